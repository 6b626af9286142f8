package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"trustdeploy/internal/model"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL             string
	PrivateKey         string
	ChainID            uint64
	Artifacts          string
	Contract           string
	PoolName           string
	PoolSimplified     string
	StrategyName       string
	StrategySimplified string
	Pair               string
	Pairs              map[string]model.LiquidityPair
	ProtocolToken      string
	GasLimit           uint64
	GasPrice           string
	Out                string
	PGDSN              string
	Preflight          bool
	LogLevel           string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRUSTDEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	preset := model.DefaultTrustConfig()
	v.SetDefault("artifacts", "./build/contracts")
	v.SetDefault("contract", "KctTrust")
	v.SetDefault("pool-name", preset.Pool.Name)
	v.SetDefault("pool-simplified", preset.Pool.Simplified)
	v.SetDefault("strategy-name", preset.Strategy.Name)
	v.SetDefault("strategy-simplified", preset.Strategy.Simplified)
	v.SetDefault("pair", "kusdt_kdai")
	v.SetDefault("protocol-token", preset.Deploy.ProtocolToken)
	v.SetDefault("out", "./data/deployments.jsonl")
	v.SetDefault("preflight", false)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	pairs, err := loadPairs(v)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RPCURL:             v.GetString("rpc"),
		PrivateKey:         v.GetString("private-key"),
		ChainID:            v.GetUint64("chain-id"),
		Artifacts:          v.GetString("artifacts"),
		Contract:           v.GetString("contract"),
		PoolName:           v.GetString("pool-name"),
		PoolSimplified:     v.GetString("pool-simplified"),
		StrategyName:       v.GetString("strategy-name"),
		StrategySimplified: v.GetString("strategy-simplified"),
		Pair:               v.GetString("pair"),
		Pairs:              pairs,
		ProtocolToken:      v.GetString("protocol-token"),
		GasLimit:           v.GetUint64("gas-limit"),
		GasPrice:           v.GetString("gas-price"),
		Out:                v.GetString("out"),
		PGDSN:              v.GetString("pg-dsn"),
		Preflight:          v.GetBool("preflight"),
		LogLevel:           v.GetString("log-level"),
	}

	return cfg, nil
}

// Trust assembles the builder input from the configured identities and the
// selected pair.
func (c Config) Trust() (model.TrustConfig, error) {
	key := strings.ToLower(strings.TrimSpace(c.Pair))
	pair, ok := c.Pairs[key]
	if !ok {
		return model.TrustConfig{}, fmt.Errorf("unknown pair %q", c.Pair)
	}

	return model.TrustConfig{
		Pool:     model.PoolIdentity{Name: c.PoolName, Simplified: c.PoolSimplified},
		Strategy: model.StrategyIdentity{Name: c.StrategyName, Simplified: c.StrategySimplified},
		Pair:     pair,
		Deploy:   model.DeployConfig{ProtocolToken: c.ProtocolToken},
	}, nil
}

// ParseGasPrice parses a wei amount, or a gwei amount with a "gwei" suffix.
// An empty input returns nil.
func ParseGasPrice(input string) (*big.Int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}

	unit := big.NewInt(1)
	if strings.HasSuffix(input, "gwei") {
		unit = big.NewInt(params.GWei)
		input = strings.TrimSpace(strings.TrimSuffix(input, "gwei"))
	}

	val, ok := new(big.Int).SetString(input, 10)
	if !ok || val.Sign() < 0 {
		return nil, fmt.Errorf("invalid gas price: %s", input)
	}
	return val.Mul(val, unit), nil
}
