package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/internal/server"
	"github.com/kwisener01/re-onmarket/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form and JSON API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Server.Port
		}

		var st store.Store
		if s, err := initStore(ctx); err != nil {
			// The server still works without persistence.
			zap.L().Warn("serve: store unavailable, runs will not be recorded", zap.Error(err))
		} else {
			st = s
			defer st.Close() //nolint:errcheck
		}

		finder := dealfinder.New(zillowClient(), describeChain(), dealfinder.Config{
			ScreenCount:  cfg.Finder.ScreenCount,
			AnalyzeCount: cfg.Finder.AnalyzeCount,
			MinDealScore: cfg.Finder.MinDealScore,
		})

		return server.New(finder, st, port).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (defaults to server.port from config)")
	rootCmd.AddCommand(serveCmd)
}
