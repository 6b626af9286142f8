package model

// TrustParams are the constructor arguments of a trust vault, in ABI order.
type TrustParams struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Decimals      uint8  `json:"decimals"`
	ProtocolToken string `json:"protocol_token"`
	LiquidityPool string `json:"liquidity_pool"`
}

// Args returns the params as constructor arguments.
func (p TrustParams) Args() []any {
	return []any{p.Name, p.Symbol, p.Decimals, p.ProtocolToken, p.LiquidityPool}
}
