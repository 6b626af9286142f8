package token

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"trustdeploy/internal/model"
)

// Finding is a discrepancy between configured and on-chain token data.
type Finding struct {
	Token   string
	Message string
}

// Preflight reads the protocol token and LP token of a vault before deployment.
type Preflight struct {
	caller Caller
	cache  *MetaCache
	logger *zap.Logger
}

func NewPreflight(caller Caller, cache *MetaCache, logger *zap.Logger) *Preflight {
	if cache == nil {
		cache = NewMetaCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preflight{caller: caller, cache: cache, logger: logger}
}

func (p *Preflight) meta(ctx context.Context, address string) (model.TokenMeta, error) {
	if !common.IsHexAddress(address) {
		return model.TokenMeta{}, fmt.Errorf("invalid address: %s", address)
	}
	addr := common.HexToAddress(address)
	if meta, ok := p.cache.Get(addr); ok {
		return meta, nil
	}
	meta, err := FetchMeta(ctx, p.caller, addr, p.logger)
	if err != nil {
		return meta, err
	}
	p.cache.Set(addr, meta)
	return meta, nil
}

// CheckParams compares params against the chain. Call errors are returned;
// mismatches come back as findings and never change params.
func (p *Preflight) CheckParams(ctx context.Context, params model.TrustParams) ([]Finding, error) {
	var findings []Finding

	if _, err := p.meta(ctx, params.ProtocolToken); err != nil {
		return nil, fmt.Errorf("protocol token %s: %w", params.ProtocolToken, err)
	}

	lp, err := p.meta(ctx, params.LiquidityPool)
	if err != nil {
		return nil, fmt.Errorf("liquidity pool %s: %w", params.LiquidityPool, err)
	}
	if lp.Decimals != params.Decimals {
		findings = append(findings, Finding{
			Token:   params.LiquidityPool,
			Message: fmt.Sprintf("configured decimals %d, on-chain decimals %d", params.Decimals, lp.Decimals),
		})
	}

	return findings, nil
}
