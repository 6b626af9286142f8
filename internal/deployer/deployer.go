// Package deployer sends contract-creation transactions to an EVM chain.
package deployer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"trustdeploy/internal/artifact"
	"trustdeploy/internal/model"
)

// Backend is the chain access a deployment needs. *chain.Client satisfies it.
type Backend interface {
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Options tune the creation transaction. Zero values mean "ask the node".
type Options struct {
	ChainID  *big.Int
	GasLimit uint64
	GasPrice *big.Int
}

// EVMDeployer deploys artifacts with a single signing key and blocks until
// the creation transaction is mined.
type EVMDeployer struct {
	backend  Backend
	registry artifact.Registry
	key      *ecdsa.PrivateKey
	from     common.Address
	opts     Options
	logger   *zap.Logger
}

func NewEVMDeployer(backend Backend, registry artifact.Registry, key *ecdsa.PrivateKey, opts Options, logger *zap.Logger) (*EVMDeployer, error) {
	if backend == nil {
		return nil, fmt.Errorf("chain backend is nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("artifact registry is nil")
	}
	if key == nil {
		return nil, fmt.Errorf("signing key is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EVMDeployer{
		backend:  backend,
		registry: registry,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		opts:     opts,
		logger:   logger,
	}, nil
}

// From returns the deploying account.
func (d *EVMDeployer) From() common.Address {
	return d.from
}

// Deploy creates contractType with args as constructor arguments.
func (d *EVMDeployer) Deploy(ctx context.Context, contractType string, args ...any) (model.DeploymentResult, error) {
	fail := func(stage Stage, err error) (model.DeploymentResult, error) {
		return model.DeploymentResult{}, &DeployError{Contract: contractType, Stage: stage, Err: err}
	}

	art, err := d.registry.Resolve(contractType)
	if err != nil {
		return fail(StageArtifact, err)
	}

	data, err := encodeCreation(art, args)
	if err != nil {
		return fail(StageEncode, err)
	}

	chainID := d.opts.ChainID
	if chainID == nil {
		chainID, err = d.backend.ChainID(ctx)
		if err != nil {
			return fail(StageChainID, err)
		}
	}

	nonce, err := d.backend.PendingNonceAt(ctx, d.from)
	if err != nil {
		return fail(StageNonce, err)
	}

	gasPrice := d.opts.GasPrice
	if gasPrice == nil {
		gasPrice, err = d.backend.SuggestGasPrice(ctx)
		if err != nil {
			return fail(StageGas, fmt.Errorf("suggest gas price: %w", err))
		}
	}

	gasLimit := d.opts.GasLimit
	if gasLimit == 0 {
		estimate, err := d.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:     d.from,
			GasPrice: gasPrice,
			Data:     data,
		})
		if err != nil {
			return fail(StageGas, fmt.Errorf("estimate gas: %w", err))
		}
		// 20% headroom over the estimate
		gasLimit = estimate + estimate/5
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		Value:    new(big.Int),
		Data:     data,
	})
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), d.key)
	if err != nil {
		return fail(StageSign, err)
	}

	if err := d.backend.SendTransaction(ctx, signedTx); err != nil {
		return fail(StageSend, err)
	}

	expected := crypto.CreateAddress(d.from, nonce)
	d.logger.Info("creation transaction submitted",
		zap.String("contract", contractType),
		zap.String("tx_hash", signedTx.Hash().Hex()),
		zap.String("from", d.from.Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit),
		zap.String("gas_price", gasPrice.String()),
		zap.String("expected_address", expected.Hex()),
	)

	receipt, err := bind.WaitMined(ctx, d.backend, signedTx)
	if err != nil {
		return model.DeploymentResult{}, &DeployError{Contract: contractType, Stage: StageWait, TxHash: signedTx.Hash().Hex(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return model.DeploymentResult{}, &DeployError{
			Contract: contractType,
			Stage:    StageReverted,
			TxHash:   signedTx.Hash().Hex(),
			Err:      fmt.Errorf("receipt status %d", receipt.Status),
		}
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = expected
	}

	result := model.DeploymentResult{
		ChainID:  chainID.Uint64(),
		Contract: contractType,
		Address:  address.Hex(),
		TxHash:   signedTx.Hash().Hex(),
		GasUsed:  receipt.GasUsed,
		Deployer: d.from.Hex(),
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	d.logger.Info("contract deployed",
		zap.String("contract", contractType),
		zap.String("address", result.Address),
		zap.Uint64("block_number", result.BlockNumber),
		zap.Uint64("gas_used", result.GasUsed),
	)

	return result, nil
}

func encodeCreation(art artifact.Artifact, args []any) ([]byte, error) {
	values, err := coerceArgs(art.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, err
	}
	packed, err := art.ABI.Pack("", values...)
	if err != nil {
		return nil, fmt.Errorf("pack constructor: %w", err)
	}

	data := make([]byte, 0, len(art.Bytecode)+len(packed))
	data = append(data, art.Bytecode...)
	return append(data, packed...), nil
}
