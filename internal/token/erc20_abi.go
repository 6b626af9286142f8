package token

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// metadataABITemplate covers the three ERC20 metadata getters. The %[1]s verb is the
// return type of name and symbol, which older tokens declare as bytes32.
const metadataABITemplate = `[
  {"type": "function", "name": "decimals", "stateMutability": "view", "inputs": [], "outputs": [{"type": "uint8"}]},
  {"type": "function", "name": "symbol", "stateMutability": "view", "inputs": [], "outputs": [{"type": "%[1]s"}]},
  {"type": "function", "name": "name", "stateMutability": "view", "inputs": [], "outputs": [{"type": "%[1]s"}]}
]`

const (
	textString  = "string"
	textBytes32 = "bytes32"
)

type parsedABI struct {
	abi abi.ABI
	err error
}

var (
	metadataABIsMu sync.Mutex
	metadataABIs   = map[string]parsedABI{}
)

// metadataABI returns the metadata ABI whose name and symbol return textType.
func metadataABI(textType string) (abi.ABI, error) {
	metadataABIsMu.Lock()
	defer metadataABIsMu.Unlock()

	if cached, ok := metadataABIs[textType]; ok {
		return cached.abi, cached.err
	}
	parsed, err := abi.JSON(strings.NewReader(fmt.Sprintf(metadataABITemplate, textType)))
	if err != nil {
		err = fmt.Errorf("parse %s metadata abi: %w", textType, err)
	}
	metadataABIs[textType] = parsedABI{abi: parsed, err: err}
	return parsed, err
}

// ERC20ABI returns the standard, string-returning ERC20 metadata ABI.
func ERC20ABI() (abi.ABI, error) {
	return metadataABI(textString)
}
