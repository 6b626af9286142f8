package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"trustdeploy/internal/model"
)

// pairEntry keeps decimals undecoded so range errors surface instead of
// being wrapped into a uint8 by the weak decoder.
type pairEntry struct {
	Pair     string      `mapstructure:"pair"`
	Address  string      `mapstructure:"address"`
	Decimals interface{} `mapstructure:"decimals"`
}

// loadPairs returns the built-in pairs overlaid with the configured table.
// A configured key replaces the built-in entry of the same name.
func loadPairs(v *viper.Viper) (map[string]model.LiquidityPair, error) {
	pairs := model.DefaultPairs()

	entries := make(map[string]pairEntry)
	if err := v.UnmarshalKey("pairs", &entries); err != nil {
		return nil, fmt.Errorf("decode pairs: %w", err)
	}

	for key, entry := range entries {
		pair := model.LiquidityPair{Pair: entry.Pair, Address: entry.Address}
		if entry.Decimals != nil {
			decimals, err := parseDecimals(entry.Decimals)
			if err != nil {
				return nil, fmt.Errorf("pair %s: %w", key, err)
			}
			pair.Decimals = &decimals
		}
		pairs[strings.ToLower(key)] = pair
	}

	return pairs, nil
}

// parseDecimals accepts a whole number in [0, 255].
func parseDecimals(value interface{}) (uint8, error) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxUint8 {
			return 0, fmt.Errorf("decimals %d out of range 0-255", v)
		}
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxUint8 {
			return 0, fmt.Errorf("decimals %d out of range 0-255", v)
		}
		n = int64(v)
	case float32:
		return floatDecimals(float64(v))
	case float64:
		return floatDecimals(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("decimals %q is not a whole number", v)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("unsupported decimals type %T", value)
	}

	if n < 0 || n > math.MaxUint8 {
		return 0, fmt.Errorf("decimals %d out of range 0-255", n)
	}
	return uint8(n), nil
}

func floatDecimals(f float64) (uint8, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("decimals %v is not a whole number", f)
	}
	if f < 0 || f > math.MaxUint8 {
		return 0, fmt.Errorf("decimals %v out of range 0-255", f)
	}
	return uint8(f), nil
}
