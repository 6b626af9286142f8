// Package artifact resolves contract type names to compiled bytecode and ABI.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrEmptyBytecode    = errors.New("artifact has no bytecode")
	ErrUnlinkedBytecode = errors.New("artifact bytecode has unlinked libraries")
)

// Artifact is a compiled contract ready for deployment.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// Registry resolves a contract type name to its artifact.
type Registry interface {
	Resolve(name string) (Artifact, error)
}

// truffleArtifact is the subset of a Truffle/Hardhat build artifact we read.
type truffleArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// Parse decodes a Truffle or Hardhat JSON artifact.
func Parse(name string, data []byte) (Artifact, error) {
	var raw truffleArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return Artifact{}, fmt.Errorf("parse artifact %s: %w", name, err)
	}
	if raw.ContractName != "" {
		name = raw.ContractName
	}

	if len(raw.ABI) == 0 {
		return Artifact{}, fmt.Errorf("artifact %s: missing abi", name)
	}
	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return Artifact{}, fmt.Errorf("parse abi %s: %w", name, err)
	}

	code := strings.TrimSpace(raw.Bytecode)
	if code == "" || code == "0x" {
		return Artifact{}, fmt.Errorf("artifact %s: %w", name, ErrEmptyBytecode)
	}
	if strings.Contains(code, "__") {
		return Artifact{}, fmt.Errorf("artifact %s: %w", name, ErrUnlinkedBytecode)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return Artifact{}, fmt.Errorf("decode bytecode %s: %w", name, err)
	}

	return Artifact{Name: name, ABI: parsed, Bytecode: bytecode}, nil
}
