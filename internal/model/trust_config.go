package model

// PoolIdentity names the trust pool a vault belongs to.
type PoolIdentity struct {
	Name       string `json:"name" mapstructure:"name"`
	Simplified string `json:"simplified" mapstructure:"simplified"`
}

// StrategyIdentity names the yield strategy the vault runs.
type StrategyIdentity struct {
	Name       string `json:"name" mapstructure:"name"`
	Simplified string `json:"simplified" mapstructure:"simplified"`
}

// LiquidityPair describes an exchange LP pair the vault wraps.
// Decimals is nil when the descriptor omits it.
type LiquidityPair struct {
	Pair     string `json:"pair" mapstructure:"pair"`
	Address  string `json:"address" mapstructure:"address"`
	Decimals *uint8 `json:"decimals,omitempty" mapstructure:"decimals"`
}

// DeployConfig holds the fixed protocol addresses used by every vault.
type DeployConfig struct {
	ProtocolToken string `json:"protocol_token" mapstructure:"protocol_token"`
}

// TrustConfig is the full input of the parameter builder.
type TrustConfig struct {
	Pool     PoolIdentity     `json:"pool"`
	Strategy StrategyIdentity `json:"strategy"`
	Pair     LiquidityPair    `json:"pair"`
	Deploy   DeployConfig     `json:"deploy"`
}

const (
	KlayswapProtocolToken = "0xc6a2ad8cc6e4a7e08fc37cc5954be07d499e7654"
	KUSDTKDAIPool         = "0xc320066b25B731A11767834839Fe57f9b2186f84"
)

// DefaultPairs returns the known Klayswap LP pairs keyed by registry name.
func DefaultPairs() map[string]LiquidityPair {
	decimals := uint8(6)
	return map[string]LiquidityPair{
		"kusdt_kdai": {
			Pair:     "KUSDT-KDAI",
			Address:  KUSDTKDAIPool,
			Decimals: &decimals,
		},
	}
}

// DefaultTrustConfig is the Bluewhale compound-interest vault over KUSDT-KDAI.
func DefaultTrustConfig() TrustConfig {
	return TrustConfig{
		Pool:     PoolIdentity{Name: "Bluewhale Trust Pool", Simplified: "BWTP"},
		Strategy: StrategyIdentity{Name: "Compound Interest", Simplified: "CI"},
		Pair:     DefaultPairs()["kusdt_kdai"],
		Deploy:   DeployConfig{ProtocolToken: KlayswapProtocolToken},
	}
}
