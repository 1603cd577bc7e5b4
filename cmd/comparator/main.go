package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmarchal/game-price-comparator/internal/browser"
	"github.com/dmarchal/game-price-comparator/internal/cache"
	"github.com/dmarchal/game-price-comparator/internal/compare"
	"github.com/dmarchal/game-price-comparator/internal/config"
	"github.com/dmarchal/game-price-comparator/internal/database"
	"github.com/dmarchal/game-price-comparator/internal/marketplace"
	"github.com/dmarchal/game-price-comparator/internal/models"
	"github.com/dmarchal/game-price-comparator/internal/report"
	"github.com/dmarchal/game-price-comparator/internal/steam"
	"github.com/dmarchal/game-price-comparator/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const defaultGameCount = 10

func main() {
	var (
		games    = flag.Int("games", 0, "Number of top sellers to compare (0 asks interactively)")
		output   = flag.String("output", "", "Report filename (default: timestamped xlsx in the working directory)")
		headless = flag.Bool("headless", true, "Run browser in headless mode")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting game price comparator")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	gameCount := *games
	if gameCount < 1 {
		gameCount = promptGameCount(os.Stdin)
	}

	browserOpts := browser.DefaultOptions()
	browserOpts.Headless = *headless && cfg.Browser.Headless
	browserOpts.Timeout = cfg.Browser.Timeout
	browserOpts.ViewportWidth = cfg.Browser.ViewportWidth
	browserOpts.ViewportHeight = cfg.Browser.ViewportHeight
	browserOpts.AcceptLanguage = cfg.Browser.AcceptLanguage
	browserOpts.TimezoneID = cfg.Browser.TimezoneID
	browserOpts.Locale = cfg.Browser.Locale

	b, err := browser.New(browserOpts)
	if err != nil {
		logger.Error("Failed to initialize browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	steamClient := steam.NewClient(steam.Config{
		StoreBaseURL:   cfg.Steam.StoreBaseURL,
		Country:        cfg.Steam.Country,
		Language:       cfg.Steam.Language,
		GamesPerPage:   cfg.Steam.GamesPerPage,
		PagePause:      cfg.Steam.PagePause,
		RequestTimeout: cfg.Steam.RequestTimeout,
	})

	extractor := marketplace.NewExtractor(b, marketplace.Config{
		BaseURL:        cfg.Marketplace.BaseURL,
		Currency:       cfg.Marketplace.Currency,
		OfferWait:      cfg.Marketplace.OfferWait,
		LinkWait:       cfg.Marketplace.LinkWait,
		ConsentTimeout: cfg.Marketplace.ConsentTimeout,
		RetryPause:     cfg.Marketplace.RetryPause,
	})

	runnerOpts := []compare.RunnerOption{
		compare.WithGamePause(cfg.Marketplace.GamePause),
		compare.WithCurrency(cfg.Marketplace.Currency),
	}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		quoteCache := cache.New(redisClient, cfg.Redis.QuoteTTL)
		if err := quoteCache.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, running without quote cache", "error", err)
		} else {
			runnerOpts = append(runnerOpts, compare.WithQuoteCache(quoteCache))
		}
	}

	logger.Info("Fetching top sellers from Steam", "count", gameCount)
	catalog, err := steamClient.TopSellers(ctx, gameCount)
	if err != nil {
		logger.Error("Failed to fetch top sellers", "error", err)
		os.Exit(1)
	}
	if len(catalog) == 0 {
		logger.Error("No games found in the top sellers listing")
		os.Exit(1)
	}

	runner := compare.NewRunner(steamClient, extractor, runnerOpts...)

	rows, err := runner.Run(ctx, catalog)
	if err != nil {
		logger.Warn("Comparison interrupted", "error", err, "completed", len(rows))
	}
	if len(rows) == 0 {
		logger.Error("No games compared")
		os.Exit(1)
	}

	filename := *output
	if filename == "" {
		filename = report.DefaultFilename(time.Now())
	}

	if err := report.WriteXLSX(filename, rows); err != nil {
		logger.Error("Failed to write report", "error", err)
		os.Exit(1)
	}
	logger.Info("Report written", "file", filename, "games", len(rows))

	if cfg.Database.Enabled {
		persistRun(ctx, cfg, rows, logger)
	}
}

// promptGameCount asks how many games to compare. Anything that does
// not parse as a positive number falls back to the default.
func promptGameCount(in *os.File) int {
	fmt.Printf("How many games to compare? [%d]: ", defaultGameCount)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return defaultGameCount
	}

	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || count < 1 {
		return defaultGameCount
	}

	return count
}

func persistRun(ctx context.Context, cfg *config.Config, rows []models.ComparisonRow, logger *slog.Logger) {
	db, err := database.New(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.DBName,
	})
	if err != nil {
		logger.Warn("Database unavailable, run not persisted", "error", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Warn("Database migration failed, run not persisted", "error", err)
		return
	}

	runID, err := database.NewRunRepository(db).InsertRun(ctx, rows)
	if err != nil {
		logger.Warn("Failed to persist run", "error", err)
		return
	}

	logger.Info("Run persisted", "run_id", runID)
}
