package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"kisan/internal/model"
)

// Config holds CLI configuration.
type Config struct {
	CatalogPath string
	LogPath     string
	LogLevel    string
	Location    string

	ListenDelay  time.Duration
	ProcessDelay time.Duration
	AnalyzeDelay time.Duration
	RefreshDelay time.Duration

	ProviderTimeout time.Duration
	ProviderRetries uint

	AgmarknetAPIKey string
	AgmarknetState  string

	ShowVersion bool
}

// ParseFlags parses command-line flags and returns configuration.
// Precedence: flags, then KISAN_* env vars (including .env files), then the
// TOML config file, then defaults.
func ParseFlags(args []string) (*Config, error) {
	// Load .env files first so env-based defaults work with existing flag parsing.
	// Missing files are fine.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v, err := loadViper()
	if err != nil {
		return nil, err
	}

	config := &Config{
		CatalogPath:     v.GetString("catalog.path"),
		LogPath:         v.GetString("log.path"),
		LogLevel:        v.GetString("log.level"),
		Location:        v.GetString("mandi.location"),
		ListenDelay:     v.GetDuration("delays.listen"),
		ProcessDelay:    v.GetDuration("delays.process"),
		AnalyzeDelay:    v.GetDuration("delays.analyze"),
		RefreshDelay:    v.GetDuration("delays.refresh"),
		ProviderTimeout: v.GetDuration("provider.timeout"),
		ProviderRetries: v.GetUint("provider.retries"),
		AgmarknetAPIKey: v.GetString("agmarknet.api_key"),
		AgmarknetState:  v.GetString("agmarknet.state"),
	}

	fs := flag.NewFlagSet("kisan", flag.ContinueOnError)
	fs.StringVar(&config.CatalogPath, "catalog", config.CatalogPath, "Path to SQLite catalog file (default: in-memory)")
	fs.StringVar(&config.LogPath, "log", config.LogPath, "Path to log file")
	fs.StringVar(&config.Location, "location", config.Location, "Default mandi location")
	fs.StringVar(&config.AgmarknetAPIKey, "agmarknet-key", config.AgmarknetAPIKey, "data.gov.in API key for live mandi prices (or set KISAN_AGMARKNET_API_KEY)")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")
	fast := fs.Bool("fast", false, "Skip simulated delays")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *fast {
		config.ListenDelay = 0
		config.ProcessDelay = 0
		config.AnalyzeDelay = 0
		config.RefreshDelay = 0
	}

	if !model.IsLocation(config.Location) {
		return nil, fmt.Errorf("unknown mandi location %q (choose one of %s)",
			config.Location, strings.Join(model.Locations, ", "))
	}

	return config, nil
}

func loadViper() (*viper.Viper, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	v.SetDefault("catalog.path", "")
	v.SetDefault("log.path", filepath.Join(home, ".kisan", "kisan.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("mandi.location", model.DefaultLocation)
	v.SetDefault("delays.listen", 3*time.Second)
	v.SetDefault("delays.process", 2*time.Second)
	v.SetDefault("delays.analyze", 3*time.Second)
	v.SetDefault("delays.refresh", 2*time.Second)
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.retries", 2)
	v.SetDefault("agmarknet.api_key", "")
	v.SetDefault("agmarknet.state", "")

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("KISAN_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "kisan"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KISAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}
