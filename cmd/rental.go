package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwisener01/re-onmarket/internal/rental"
	"github.com/kwisener01/re-onmarket/internal/report"
)

var rentalCmd = &cobra.Command{
	Use:   "rental <price> <monthly-rent>",
	Short: "Model rental cash flow for a purchase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var price, rent float64
		if _, err := fmt.Sscanf(args[0], "%f", &price); err != nil {
			return fmt.Errorf("rental: bad price %q", args[0])
		}
		if _, err := fmt.Sscanf(args[1], "%f", &rent); err != nil {
			return fmt.Errorf("rental: bad rent %q", args[1])
		}

		a := rental.DefaultAssumptions()
		if v, _ := cmd.Flags().GetFloat64("down"); v > 0 {
			a.DownPaymentPct = v
		}
		if v, _ := cmd.Flags().GetFloat64("rate"); cmd.Flags().Changed("rate") {
			a.InterestRate = v
		}
		if v, _ := cmd.Flags().GetInt("term"); v > 0 {
			a.LoanTermYears = v
		}
		if v, _ := cmd.Flags().GetFloat64("hoa"); v > 0 {
			a.HOAMonthly = v
		}

		fmt.Print(report.Rental(rental.Analyze(price, rent, a)))
		return nil
	},
}

func init() {
	rentalCmd.Flags().Float64("down", 0, "down payment percent")
	rentalCmd.Flags().Float64("rate", 0, "annual interest rate percent")
	rentalCmd.Flags().Int("term", 0, "loan term in years")
	rentalCmd.Flags().Float64("hoa", 0, "monthly HOA dues")
	rootCmd.AddCommand(rentalCmd)
}
