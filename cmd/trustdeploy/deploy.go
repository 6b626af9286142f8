package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustdeploy/internal/artifact"
	"trustdeploy/internal/chain"
	"trustdeploy/internal/config"
	"trustdeploy/internal/deployer"
	"trustdeploy/internal/model"
	"trustdeploy/internal/storage"
	"trustdeploy/internal/storage/postgres"
	"trustdeploy/internal/token"
	"trustdeploy/internal/trust"
)

// paramsChecker inspects built params before they are sent. *token.Preflight satisfies it.
type paramsChecker interface {
	CheckParams(ctx context.Context, params model.TrustParams) ([]token.Finding, error)
}

// deployRun is everything runDeploy wires together once connections are open.
type deployRun struct {
	contract  string
	deployer  trust.Deployer
	journal   storage.Storage
	preflight paramsChecker
	logger    *zap.Logger
	now       func() time.Time
}

// run builds the params, optionally checks them, deploys and journals the result.
func (r deployRun) run(ctx context.Context, trustCfg model.TrustConfig, out io.Writer) (model.DeploymentRecord, error) {
	logger := r.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := r.now
	if now == nil {
		now = time.Now
	}
	if r.journal == nil {
		return model.DeploymentRecord{}, fmt.Errorf("journal is nil")
	}

	params, err := trust.BuildParams(trustCfg)
	if err != nil {
		return model.DeploymentRecord{}, err
	}

	if r.preflight != nil {
		findings, err := r.preflight.CheckParams(ctx, params)
		if err != nil {
			return model.DeploymentRecord{}, fmt.Errorf("preflight: %w", err)
		}
		for _, f := range findings {
			logger.Warn("preflight mismatch", zap.String("token", f.Token), zap.String("detail", f.Message))
		}
	}

	logger.Info("deploy start",
		zap.String("contract", r.contract),
		zap.String("name", params.Name),
		zap.String("symbol", params.Symbol),
		zap.Uint8("decimals", params.Decimals),
		zap.String("protocol_token", params.ProtocolToken),
		zap.String("liquidity_pool", params.LiquidityPool),
	)

	params, result, err := trust.Deploy(ctx, r.deployer, r.contract, trustCfg)
	if err != nil {
		return model.DeploymentRecord{}, err
	}

	record := model.DeploymentRecord{
		DeploymentResult: result,
		Params:           params,
		DeployedAt:       now().UTC().Format(time.RFC3339Nano),
	}
	if err := r.journal.PutDeployment(ctx, record); err != nil {
		return record, fmt.Errorf("record deployment: %w", err)
	}

	logger.Info("deploy complete",
		zap.String("address", result.Address),
		zap.String("tx_hash", result.TxHash),
		zap.Uint64("block_number", result.BlockNumber),
	)
	if out != nil {
		fmt.Fprintln(out, result.Address)
	}

	return record, nil
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	trustCfg, err := cfg.Trust()
	if err != nil {
		return err
	}
	if _, err := trust.BuildParams(trustCfg); err != nil {
		return err
	}

	key, err := deployer.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return err
	}
	gasPrice, err := config.ParseGasPrice(cfg.GasPrice)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	journal := storage.Multi{storage.NewJsonlStorage(cfg.Out)}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		journal = append(journal, store)
	}

	opts := deployer.Options{GasLimit: cfg.GasLimit, GasPrice: gasPrice}
	if cfg.ChainID != 0 {
		opts.ChainID = new(big.Int).SetUint64(cfg.ChainID)
	}
	evm, err := deployer.NewEVMDeployer(chainClient, artifact.NewDirRegistry(cfg.Artifacts), key, opts, logger)
	if err != nil {
		return err
	}

	run := deployRun{
		contract: cfg.Contract,
		deployer: evm,
		journal:  journal,
		logger:   logger.With(zap.String("rpc", cfg.RPCURL), zap.String("from", evm.From().Hex()), zap.String("out", cfg.Out)),
	}
	if cfg.Preflight {
		run.preflight = token.NewPreflight(chainClient, token.NewMetaCache(), logger)
	}

	_, err = run.run(ctx, trustCfg, cmd.OutOrStdout())
	return err
}
