package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "re-onmarket",
	Short: "Residential investment deal analyzer",
	Long:  "Searches residential listings, reconciles upstream data, computes rehab/MAO/profit scenarios, scores deal quality, and models rental cash flow.",
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
