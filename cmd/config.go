package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kwisener01/re-onmarket/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml in the current directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		const path = "config.yaml"

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return eris.Errorf("config init: %s already exists (use --force to overwrite)", path)
		}

		starter := config.Config{
			Store: config.StoreConfig{
				Driver:      "sqlite",
				DatabaseURL: "reonmarket.db",
			},
			Zillow:  config.ZillowConfig{Host: "zillow-working-api.p.rapidapi.com"},
			Realtor: config.RealtorConfig{Host: "realtor.p.rapidapi.com"},
			Redfin:  config.RedfinConfig{Host: "www.redfin.com"},
			Scraper: config.ScraperConfig{Host: "ai-web-scraper1.p.rapidapi.com"},
			Finder: config.FinderConfig{
				ScreenCount:  20,
				AnalyzeCount: 5,
				MinDealScore: 6,
			},
			Server: config.ServerConfig{Port: 8080},
			Log:    config.LogConfig{Level: "info", Format: "json"},
		}

		out, err := yaml.Marshal(starter)
		if err != nil {
			return eris.Wrap(err, "config init: marshal")
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return eris.Wrap(err, "config init: write")
		}

		fmt.Printf("Wrote %s. Add your RapidAPI key under zillow.key (and realtor.key, scraper.key for descriptions).\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		shown := *cfg
		shown.Zillow.Key = redact(shown.Zillow.Key)
		shown.Realtor.Key = redact(shown.Realtor.Key)
		shown.Scraper.Key = redact(shown.Scraper.Key)
		shown.Notion.Token = redact(shown.Notion.Token)

		out, err := yaml.Marshal(shown)
		if err != nil {
			return eris.Wrap(err, "config show: marshal")
		}
		fmt.Print(string(out))
		return nil
	},
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
