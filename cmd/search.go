package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kwisener01/re-onmarket/pkg/zillow"
)

var searchCmd = &cobra.Command{
	Use:   "search <location>",
	Short: "Search listings without analyzing them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxPrice, _ := cmd.Flags().GetFloat64("max-price")
		minBeds, _ := cmd.Flags().GetInt("min-beds")
		minBaths, _ := cmd.Flags().GetInt("min-baths")
		keywords, _ := cmd.Flags().GetStringSlice("keyword")

		listings, err := zillowClient().Search(cmd.Context(), zillow.SearchCriteria{
			Location: args[0],
			MaxPrice: maxPrice,
			MinBeds:  minBeds,
			MinBaths: minBaths,
			Keywords: keywords,
		})
		if err != nil {
			return eris.Wrap(err, "search")
		}

		p := message.NewPrinter(language.AmericanEnglish)
		for i, l := range listings {
			p.Printf("%2d. %s, %s, %s %s: $%.0f, %.0f bd / %.1f ba / %.0f sqft\n",
				i+1, l.Address, l.City, l.State, l.Zip,
				l.Price, l.Beds, l.Baths, l.Sqft)
		}
		fmt.Printf("%d listings\n", len(listings))
		return nil
	},
}

func init() {
	searchCmd.Flags().Float64("max-price", 0, "maximum list price")
	searchCmd.Flags().Int("min-beds", 0, "minimum bedrooms")
	searchCmd.Flags().Int("min-baths", 0, "minimum bathrooms")
	searchCmd.Flags().StringSlice("keyword", nil, "extra search phrases, repeatable")
	rootCmd.AddCommand(searchCmd)
}
