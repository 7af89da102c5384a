package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/analyzer"
	"github.com/kwisener01/re-onmarket/internal/describe"
	"github.com/kwisener01/re-onmarket/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <address>",
	Short: "Analyze a single property by address",
	Long:  "Fetches the listing record, reconciles its fields, and prints rehab scenarios, MAO offers, deal score, and fixer signals.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		address := args[0]

		raw, err := zillowClient().Property(ctx, address)
		if err != nil {
			zap.L().Warn("analyze: property fetch failed", zap.Error(err))
			raw = nil
		}

		var description string
		if withText, _ := cmd.Flags().GetBool("description"); withText {
			description = describeChain().Description(ctx, describe.Property{Address: address})
		}

		rep := analyzer.Analyze(analyzer.Input{Raw: raw, Description: description})

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return eris.Wrap(err, "analyze: marshal report")
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Print(report.Property(rep))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "print the full report as JSON")
	analyzeCmd.Flags().Bool("description", true, "fetch listing text for keyword detection")
	rootCmd.AddCommand(analyzeCmd)
}
