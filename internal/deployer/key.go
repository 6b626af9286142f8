package deployer

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// ParsePrivateKey parses a hex secp256k1 key, with or without a 0x/0X prefix.
func ParsePrivateKey(input string) (*ecdsa.PrivateKey, error) {
	input = strings.TrimSpace(input)
	if len(input) >= 2 && (input[:2] == "0x" || input[:2] == "0X") {
		input = input[2:]
	}
	if input == "" {
		return nil, fmt.Errorf("private key is required")
	}
	key, err := crypto.HexToECDSA(input)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}
