package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"trustdeploy/internal/config"
	"trustdeploy/internal/trust"
)

func runParams(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	trustCfg, err := cfg.Trust()
	if err != nil {
		return err
	}

	params, err := trust.BuildParams(trustCfg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Contract string `json:"contract"`
		Args     []any  `json:"args"`
	}{
		Contract: cfg.Contract,
		Args:     params.Args(),
	})
}
