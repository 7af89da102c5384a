package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kwisener01/re-onmarket/internal/report"
	"github.com/kwisener01/re-onmarket/internal/trend"
)

var historyCmd = &cobra.Command{
	Use:   "history <zpid>",
	Short: "Analyze a property's valuation trend",
	Long:  "Fetches the valuation history chart for a zpid and prints trend, volatility, and the investment signal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		which, _ := cmd.Flags().GetString("chart")

		doc, err := zillowClient().Chart(cmd.Context(), args[0], which)
		if err != nil {
			return eris.Wrap(err, "history: fetch chart")
		}

		points, err := trend.FromChart(doc)
		if err != nil {
			return err
		}
		analysis, err := trend.Analyze(points)
		if err != nil {
			return err
		}

		fmt.Print(report.Trend(*analysis))
		return nil
	},
}

func init() {
	historyCmd.Flags().String("chart", "zestimate_history", "chart series to analyze (zestimate_history or rent_zestimate_history)")
	rootCmd.AddCommand(historyCmd)
}
