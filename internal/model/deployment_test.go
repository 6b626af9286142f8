package model

import (
	"encoding/json"
	"testing"
)

func TestDeploymentRecordJSONFlattensResult(t *testing.T) {
	record := DeploymentRecord{
		DeploymentResult: DeploymentResult{
			ChainID:     8217,
			Contract:    "KctTrust",
			Address:     "0x1111111111111111111111111111111111111111",
			TxHash:      "0xabc",
			BlockNumber: 42,
			GasUsed:     21000,
			Deployer:    "0x2222222222222222222222222222222222222222",
		},
		Params: TrustParams{
			Name:          "Bluewhale Trust Pool KUSDT-KDAI Compound Interest",
			Symbol:        "BWTP KUSDT-KDAI CI",
			Decimals:      6,
			ProtocolToken: KlayswapProtocolToken,
			LiquidityPool: KUSDTKDAIPool,
		},
		DeployedAt: "2024-01-01T00:00:00Z",
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["contract"] != "KctTrust" {
		t.Fatalf("contract should be a top-level field: %v", decoded)
	}
	params, ok := decoded["params"].(map[string]interface{})
	if !ok {
		t.Fatalf("params should be an object")
	}
	if params["liquidity_pool"] != KUSDTKDAIPool {
		t.Fatalf("liquidity pool mismatch: %v", params["liquidity_pool"])
	}
}
