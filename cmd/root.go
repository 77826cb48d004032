package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearcomp/claimdate/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "claimdate",
	Short: "Injury-date extraction for workers'-comp case tickets",
	Long:  "Resolves a canonical date of injury from ticket fields, free text, conversations and attachments through a layered extraction cascade with hard sanity bounds.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
