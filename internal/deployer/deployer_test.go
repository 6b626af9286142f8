package deployer

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trustdeploy/internal/artifact"
)

const trustABI = `[
  {
    "inputs": [
      {"internalType": "string", "name": "_name", "type": "string"},
      {"internalType": "string", "name": "_symbol", "type": "string"},
      {"internalType": "uint8", "name": "_decimals", "type": "uint8"},
      {"internalType": "address", "name": "_ksp", "type": "address"},
      {"internalType": "address", "name": "_kslp", "type": "address"}
    ],
    "stateMutability": "nonpayable",
    "type": "constructor"
  }
]`

var trustBytecode = []byte{0x60, 0x80, 0x60, 0x40, 0x52}

type fakeBackend struct {
	chainID     *big.Int
	nonce       uint64
	gasPrice    *big.Int
	estimate    uint64
	status      uint64
	sendErr     error
	estimateErr error

	chainIDCalls int
	estimateMsg  ethereum.CallMsg
	sent         []*types.Transaction
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	b.chainIDCalls++
	return b.chainID, nil
}

func (b *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return b.nonce, nil
}

func (b *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return b.gasPrice, nil
}

func (b *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	b.estimateMsg = msg
	return b.estimate, b.estimateErr
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	for _, tx := range b.sent {
		if tx.Hash() == txHash {
			return &types.Receipt{
				Status:      b.status,
				TxHash:      txHash,
				GasUsed:     1_234_567,
				BlockNumber: big.NewInt(99),
			}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (b *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:  big.NewInt(8217),
		nonce:    7,
		gasPrice: big.NewInt(25_000_000_000),
		estimate: 1_000_000,
		status:   types.ReceiptStatusSuccessful,
	}
}

func trustRegistry(t *testing.T) artifact.StaticRegistry {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(trustABI))
	require.NoError(t, err)
	return artifact.StaticRegistry{
		"KctTrust": {Name: "KctTrust", ABI: parsed, Bytecode: trustBytecode},
	}
}

func trustArgs() []any {
	return []any{
		"Bluewhale Trust Pool KUSDT-KDAI Compound Interest",
		"BWTP KUSDT-KDAI CI",
		uint8(6),
		"0xc6a2ad8cc6e4a7e08fc37cc5954be07d499e7654",
		"0xc320066b25B731A11767834839Fe57f9b2186f84",
	}
}

func TestEVMDeployerDeploy(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := newFakeBackend()
	registry := trustRegistry(t)

	d, err := NewEVMDeployer(backend, registry, key, Options{}, zap.NewNop())
	require.NoError(t, err)

	result, err := d.Deploy(context.Background(), "KctTrust", trustArgs()...)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	from := crypto.PubkeyToAddress(key.PublicKey)
	tx := backend.sent[0]

	assert.Nil(t, tx.To(), "creation tx has no recipient")
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(1_200_000), tx.Gas())
	assert.Equal(t, big.NewInt(25_000_000_000), tx.GasPrice())
	assert.Equal(t, from, backend.estimateMsg.From)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(8217)), tx)
	require.NoError(t, err)
	assert.Equal(t, from, sender)

	require.True(t, len(tx.Data()) > len(trustBytecode))
	assert.Equal(t, trustBytecode, tx.Data()[:len(trustBytecode)])
	values, err := registry["KctTrust"].ABI.Constructor.Inputs.Unpack(tx.Data()[len(trustBytecode):])
	require.NoError(t, err)
	require.Len(t, values, 5)
	assert.Equal(t, "Bluewhale Trust Pool KUSDT-KDAI Compound Interest", values[0])
	assert.Equal(t, "BWTP KUSDT-KDAI CI", values[1])
	assert.Equal(t, uint8(6), values[2])
	assert.Equal(t, common.HexToAddress("0xc6a2ad8cc6e4a7e08fc37cc5954be07d499e7654"), values[3])
	assert.Equal(t, common.HexToAddress("0xc320066b25B731A11767834839Fe57f9b2186f84"), values[4])

	assert.Equal(t, uint64(8217), result.ChainID)
	assert.Equal(t, "KctTrust", result.Contract)
	assert.Equal(t, crypto.CreateAddress(from, 7).Hex(), result.Address)
	assert.Equal(t, tx.Hash().Hex(), result.TxHash)
	assert.Equal(t, uint64(99), result.BlockNumber)
	assert.Equal(t, uint64(1_234_567), result.GasUsed)
	assert.Equal(t, from.Hex(), result.Deployer)
}

func TestEVMDeployerOptionsOverrideNode(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := newFakeBackend()
	backend.estimateErr = errors.New("estimate must not be called")

	d, err := NewEVMDeployer(backend, trustRegistry(t), key, Options{
		ChainID:  big.NewInt(1001),
		GasLimit: 5_000_000,
		GasPrice: big.NewInt(750_000_000_000),
	}, nil)
	require.NoError(t, err)

	result, err := d.Deploy(context.Background(), "KctTrust", trustArgs()...)
	require.NoError(t, err)

	require.Len(t, backend.sent, 1)
	assert.Zero(t, backend.chainIDCalls)
	assert.Equal(t, uint64(5_000_000), backend.sent[0].Gas())
	assert.Equal(t, big.NewInt(750_000_000_000), backend.sent[0].GasPrice())
	assert.Equal(t, uint64(1001), result.ChainID)
}

func TestEVMDeployerFailures(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	t.Run("artifact not found", func(t *testing.T) {
		d, err := NewEVMDeployer(newFakeBackend(), trustRegistry(t), key, Options{}, nil)
		require.NoError(t, err)

		_, err = d.Deploy(context.Background(), "Unknown", trustArgs()...)
		var deployErr *DeployError
		require.ErrorAs(t, err, &deployErr)
		assert.Equal(t, StageArtifact, deployErr.Stage)
		assert.ErrorIs(t, err, artifact.ErrArtifactNotFound)
	})

	t.Run("bad argument", func(t *testing.T) {
		d, err := NewEVMDeployer(newFakeBackend(), trustRegistry(t), key, Options{}, nil)
		require.NoError(t, err)

		args := trustArgs()
		args[4] = "not-an-address"
		_, err = d.Deploy(context.Background(), "KctTrust", args...)
		var deployErr *DeployError
		require.ErrorAs(t, err, &deployErr)
		assert.Equal(t, StageEncode, deployErr.Stage)
	})

	t.Run("send rejected", func(t *testing.T) {
		backend := newFakeBackend()
		backend.sendErr = errors.New("insufficient funds for gas * price + value")
		d, err := NewEVMDeployer(backend, trustRegistry(t), key, Options{}, nil)
		require.NoError(t, err)

		_, err = d.Deploy(context.Background(), "KctTrust", trustArgs()...)
		var deployErr *DeployError
		require.ErrorAs(t, err, &deployErr)
		assert.Equal(t, StageSend, deployErr.Stage)
		assert.ErrorIs(t, err, backend.sendErr)
	})

	t.Run("reverted constructor", func(t *testing.T) {
		backend := newFakeBackend()
		backend.status = types.ReceiptStatusFailed
		d, err := NewEVMDeployer(backend, trustRegistry(t), key, Options{}, nil)
		require.NoError(t, err)

		_, err = d.Deploy(context.Background(), "KctTrust", trustArgs()...)
		var deployErr *DeployError
		require.ErrorAs(t, err, &deployErr)
		assert.Equal(t, StageReverted, deployErr.Stage)
		assert.NotEmpty(t, deployErr.TxHash)
	})
}

func TestNewEVMDeployerRequiresDependencies(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	_, err = NewEVMDeployer(nil, artifact.StaticRegistry{}, key, Options{}, nil)
	assert.Error(t, err)
	_, err = NewEVMDeployer(newFakeBackend(), nil, key, Options{}, nil)
	assert.Error(t, err)
	_, err = NewEVMDeployer(newFakeBackend(), artifact.StaticRegistry{}, nil, Options{}, nil)
	assert.Error(t, err)
}

func TestParsePrivateKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hexKey := common.Bytes2Hex(crypto.FromECDSA(key))

	for _, input := range []string{hexKey, "0x" + hexKey, "0X" + hexKey, "  " + hexKey + "\n"} {
		parsed, err := ParsePrivateKey(input)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(parsed.PublicKey))
	}

	_, err = ParsePrivateKey("")
	assert.Error(t, err)
	_, err = ParsePrivateKey("0xnothex")
	assert.Error(t, err)
}
