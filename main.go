package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"kisan/cmd"
	"kisan/internal/agmarknet"
	"kisan/internal/db"
	"kisan/internal/logger"
	"kisan/internal/provider"
	"kisan/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

// staleFor is how long a live price table may be shown once the API fails.
const staleFor = 6 * time.Hour

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if config.ShowVersion {
		fmt.Println("kisan", version)
		return
	}

	log, err := logger.New(config.LogPath, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Open catalog
	database, err := db.Open(config.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	services := buildServices(config, database, log)

	log.Info("starting",
		zap.String("version", version),
		zap.String("location", config.Location),
		zap.Bool("live_prices", config.AgmarknetAPIKey != ""),
	)

	app := ui.New(ui.Deps{
		Services: services,
		Log:      log,
		Location: config.Location,
		Terminal: ui.DetectTerminalCapabilities(),
		Now:      time.Now,
	})

	// Create and run Bubble Tea app
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires the mocks and the catalog. Live mandi prices are used
// when an Agmarknet key is configured, with the last good table kept as a
// fallback.
func buildServices(config *cmd.Config, database *sql.DB, log *zap.Logger) provider.Services {
	pick := provider.RandomPicker(time.Now().UnixNano())

	policy := provider.DefaultPolicy()
	policy.Timeout = config.ProviderTimeout
	policy.Retries = config.ProviderRetries
	policy.Logger = log.Named("provider")

	var market provider.MarketPrices = provider.CatalogMarket{
		DB:    database,
		Delay: config.RefreshDelay,
		Now:   time.Now,
	}
	if config.AgmarknetAPIKey != "" {
		market = provider.NewCachedMarket(agmarknet.NewClient(config.AgmarknetAPIKey).WithState(config.AgmarknetState), staleFor, log.Named("market"))
	}

	return provider.Services{
		Speech:  provider.MockSpeech{Delay: config.ListenDelay, Pick: pick},
		Advisor: provider.MockAdvisor{Delay: config.ProcessDelay, Pick: pick},
		Vision:  provider.MockClassifier{Delay: config.AnalyzeDelay, Pick: pick},
		Market:  market,
		Schemes: provider.CatalogSchemes{DB: database},
		Policy:  policy,
	}
}
