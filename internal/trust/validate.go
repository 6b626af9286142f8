package trust

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"trustdeploy/internal/model"
)

func validate(cfg model.TrustConfig) error {
	fields := []struct {
		name  string
		value string
	}{
		{"pool name", cfg.Pool.Name},
		{"pool simplified name", cfg.Pool.Simplified},
		{"strategy name", cfg.Strategy.Name},
		{"strategy simplified name", cfg.Strategy.Simplified},
		{"pair label", cfg.Pair.Pair},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%s: %w", f.name, ErrEmptyField)
		}
	}

	if cfg.Pair.Decimals == nil {
		return fmt.Errorf("pair %s: %w", cfg.Pair.Pair, ErrMissingDecimals)
	}

	if err := checkAddress("protocol token", cfg.Deploy.ProtocolToken); err != nil {
		return err
	}
	return checkAddress("liquidity pool", cfg.Pair.Address)
}

// checkAddress accepts checksummed or lower/upper case hex with a 0x prefix.
func checkAddress(name, input string) error {
	if len(input) != 2+2*common.AddressLength || (input[:2] != "0x" && input[:2] != "0X") {
		return fmt.Errorf("%s %q: %w", name, input, ErrInvalidAddress)
	}
	if !common.IsHexAddress(input) {
		return fmt.Errorf("%s %q: %w", name, input, ErrInvalidAddress)
	}
	return nil
}
