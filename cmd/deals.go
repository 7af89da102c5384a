package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/internal/export"
	"github.com/kwisener01/re-onmarket/internal/report"
	"github.com/kwisener01/re-onmarket/internal/store"
	"github.com/kwisener01/re-onmarket/pkg/notion"
)

var dealsCmd = &cobra.Command{
	Use:   "deals <location>",
	Short: "Run the full deal-finder workflow",
	Long:  "Searches listings, screens by price per square foot, deep-analyzes the best candidates, and runs trend and rental follow-ups on deals clearing the score threshold.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		maxPrice, _ := cmd.Flags().GetFloat64("max-price")
		minBeds, _ := cmd.Flags().GetInt("min-beds")
		minBaths, _ := cmd.Flags().GetInt("min-baths")
		keywords, _ := cmd.Flags().GetStringSlice("keyword")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		toNotion, _ := cmd.Flags().GetBool("notion")

		criteria := dealfinder.Criteria{
			Location: args[0],
			MaxPrice: maxPrice,
			MinBeds:  minBeds,
			MinBaths: minBaths,
			Keywords: keywords,
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, criteria)
		if err != nil {
			return eris.Wrap(err, "deals: create run")
		}

		finder := dealfinder.New(zillowClient(), describeChain(), dealfinder.Config{
			ScreenCount:  cfg.Finder.ScreenCount,
			AnalyzeCount: cfg.Finder.AnalyzeCount,
			MinDealScore: cfg.Finder.MinDealScore,
		})

		results, err := finder.FindDeals(ctx, criteria)
		if err != nil {
			_ = st.CompleteRun(ctx, run.ID, store.StatusFailed, nil)
			return eris.Wrap(err, "deals: workflow")
		}

		if err := st.CompleteRun(ctx, run.ID, store.StatusComplete, results); err != nil {
			zap.L().Warn("deals: persist results failed", zap.Error(err))
		}

		fmt.Print(report.Results(results))

		if xlsxPath != "" {
			if err := export.WriteWorkbook(xlsxPath, results); err != nil {
				return err
			}
			fmt.Printf("Workbook written to %s\n", xlsxPath)
		}

		if toNotion {
			if cfg.Notion.Token == "" || cfg.Notion.DealDB == "" {
				return eris.New("deals: notion export needs notion.token and notion.deal_db in config")
			}
			sink := export.NotionSink{
				Client:     notion.NewClient(cfg.Notion.Token),
				DatabaseID: cfg.Notion.DealDB,
			}
			if err := sink.Export(ctx, results); err != nil {
				return err
			}
			fmt.Println("Deals exported to Notion")
		}

		return nil
	},
}

func init() {
	dealsCmd.Flags().Float64("max-price", 0, "maximum list price")
	dealsCmd.Flags().Int("min-beds", 0, "minimum bedrooms")
	dealsCmd.Flags().Int("min-baths", 0, "minimum bathrooms")
	dealsCmd.Flags().StringSlice("keyword", nil, "extra search phrases, repeatable")
	dealsCmd.Flags().String("xlsx", "", "write results to an xlsx workbook at this path")
	dealsCmd.Flags().Bool("notion", false, "export results to the configured Notion database")
	rootCmd.AddCommand(dealsCmd)
}
