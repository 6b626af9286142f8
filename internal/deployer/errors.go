package deployer

import "fmt"

// Stage names the step of a deployment that failed.
type Stage string

const (
	StageArtifact Stage = "artifact"
	StageEncode   Stage = "encode"
	StageChainID  Stage = "chain_id"
	StageNonce    Stage = "nonce"
	StageGas      Stage = "gas"
	StageSign     Stage = "sign"
	StageSend     Stage = "send"
	StageWait     Stage = "wait"
	StageReverted Stage = "reverted"
)

// DeployError is returned for any failed deployment.
type DeployError struct {
	Contract string
	Stage    Stage
	TxHash   string
	Err      error
}

func (e *DeployError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("deploy %s: %s (tx %s): %v", e.Contract, e.Stage, e.TxHash, e.Err)
	}
	return fmt.Sprintf("deploy %s: %s: %v", e.Contract, e.Stage, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}
