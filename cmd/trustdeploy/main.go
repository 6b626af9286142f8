package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "trustdeploy",
		Short:        "Deploy trust vault contracts",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "Print the constructor arguments without deploying",
		RunE:  runParams,
	}
	addTrustFlags(paramsCmd)
	root.AddCommand(paramsCmd)

	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the trust vault",
		RunE:  runDeploy,
	}
	addTrustFlags(deployCmd)
	deployCmd.Flags().String("rpc", "", "RPC URL")
	deployCmd.Flags().String("private-key", "", "deployer private key (hex)")
	deployCmd.Flags().Uint64("chain-id", 0, "chain id, 0 means ask the node")
	deployCmd.Flags().String("artifacts", "./build/contracts", "directory of compiled contract artifacts")
	deployCmd.Flags().Uint64("gas-limit", 0, "gas limit, 0 means estimate")
	deployCmd.Flags().String("gas-price", "", "gas price in wei or with a gwei suffix, empty means ask the node")
	deployCmd.Flags().String("out", "./data/deployments.jsonl", "deployment journal JSONL path")
	deployCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the deployment journal")
	deployCmd.Flags().Bool("preflight", false, "check token metadata on chain before deploying")
	root.AddCommand(deployCmd)

	return root
}

func addTrustFlags(cmd *cobra.Command) {
	cmd.Flags().String("contract", "KctTrust", "contract artifact name")
	cmd.Flags().String("pool-name", "", "pool display name")
	cmd.Flags().String("pool-simplified", "", "pool abbreviation")
	cmd.Flags().String("strategy-name", "", "strategy display name")
	cmd.Flags().String("strategy-simplified", "", "strategy abbreviation")
	cmd.Flags().String("pair", "kusdt_kdai", "liquidity pair registry key")
	cmd.Flags().String("protocol-token", "", "protocol token address")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
