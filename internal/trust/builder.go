// Package trust builds the constructor arguments of a trust vault and hands
// them to a deployer.
package trust

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trustdeploy/internal/model"
)

// DefaultContract is the artifact name of the trust vault.
const DefaultContract = "KctTrust"

var (
	ErrMissingDecimals = errors.New("pair decimals missing")
	ErrEmptyField      = errors.New("empty field")
	ErrInvalidAddress  = errors.New("invalid address")
)

// Deployer sends a contract creation for contractType with constructor args.
type Deployer interface {
	Deploy(ctx context.Context, contractType string, args ...any) (model.DeploymentResult, error)
}

// BuildParams derives the vault name, symbol, decimals and addresses from cfg.
// Values are passed through as given; validation only rejects, never rewrites.
func BuildParams(cfg model.TrustConfig) (model.TrustParams, error) {
	if err := validate(cfg); err != nil {
		return model.TrustParams{}, err
	}

	return model.TrustParams{
		Name:          strings.Join([]string{cfg.Pool.Name, cfg.Pair.Pair, cfg.Strategy.Name}, " "),
		Symbol:        strings.Join([]string{cfg.Pool.Simplified, cfg.Pair.Pair, cfg.Strategy.Simplified}, " "),
		Decimals:      *cfg.Pair.Decimals,
		ProtocolToken: cfg.Deploy.ProtocolToken,
		LiquidityPool: cfg.Pair.Address,
	}, nil
}

// Deploy builds the params for cfg and forwards them unchanged to d.
func Deploy(ctx context.Context, d Deployer, contractType string, cfg model.TrustConfig) (model.TrustParams, model.DeploymentResult, error) {
	if d == nil {
		return model.TrustParams{}, model.DeploymentResult{}, fmt.Errorf("deployer is nil")
	}
	if contractType == "" {
		contractType = DefaultContract
	}

	params, err := BuildParams(cfg)
	if err != nil {
		return model.TrustParams{}, model.DeploymentResult{}, fmt.Errorf("build params: %w", err)
	}

	result, err := d.Deploy(ctx, contractType, params.Args()...)
	if err != nil {
		return params, model.DeploymentResult{}, err
	}
	return params, result, nil
}
