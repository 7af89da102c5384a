package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Zillow  ZillowConfig  `yaml:"zillow" mapstructure:"zillow"`
	Realtor RealtorConfig `yaml:"realtor" mapstructure:"realtor"`
	Redfin  RedfinConfig  `yaml:"redfin" mapstructure:"redfin"`
	Scraper ScraperConfig `yaml:"scraper" mapstructure:"scraper"`
	Notion  NotionConfig  `yaml:"notion" mapstructure:"notion"`
	Finder  FinderConfig  `yaml:"finder" mapstructure:"finder"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ZillowConfig holds RapidAPI credentials for the Zillow listing API.
type ZillowConfig struct {
	Key  string `yaml:"key" mapstructure:"key"`
	Host string `yaml:"host" mapstructure:"host"`
}

// RealtorConfig holds RapidAPI credentials for the Realtor.com API.
type RealtorConfig struct {
	Key  string `yaml:"key" mapstructure:"key"`
	Host string `yaml:"host" mapstructure:"host"`
}

// RedfinConfig configures the unofficial Redfin endpoints.
type RedfinConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
}

// ScraperConfig holds RapidAPI credentials for the AI web scraper.
type ScraperConfig struct {
	Key  string `yaml:"key" mapstructure:"key"`
	Host string `yaml:"host" mapstructure:"host"`
}

// NotionConfig holds the Notion sink credentials.
type NotionConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	DealDB string `yaml:"deal_db" mapstructure:"deal_db"`
}

// FinderConfig sets the deal-finder workflow counts and thresholds.
type FinderConfig struct {
	ScreenCount  int `yaml:"screen_count" mapstructure:"screen_count"`
	AnalyzeCount int `yaml:"analyze_count" mapstructure:"analyze_count"`
	MinDealScore int `yaml:"min_deal_score" mapstructure:"min_deal_score"`
}

// ServerConfig configures the web server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REONMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "reonmarket.db")
	v.SetDefault("zillow.host", "zillow-working-api.p.rapidapi.com")
	v.SetDefault("realtor.host", "realtor.p.rapidapi.com")
	v.SetDefault("redfin.host", "www.redfin.com")
	v.SetDefault("scraper.host", "ai-web-scraper1.p.rapidapi.com")
	v.SetDefault("finder.screen_count", 20)
	v.SetDefault("finder.analyze_count", 5)
	v.SetDefault("finder.min_deal_score", 6)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
