// Package main runs the Commander Companion API server: collection storage,
// the auto-build deck assembler, and Scryfall card lookup over REST.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramonehamilton/commander-companion/internal/api"
	"github.com/ramonehamilton/commander-companion/internal/api/handlers"
	"github.com/ramonehamilton/commander-companion/internal/collection"
	"github.com/ramonehamilton/commander-companion/internal/config"
	"github.com/ramonehamilton/commander-companion/internal/deck"
	"github.com/ramonehamilton/commander-companion/internal/scryfall"
	"github.com/ramonehamilton/commander-companion/internal/storage"
	"github.com/ramonehamilton/commander-companion/internal/storage/repository"
)

var (
	port       = flag.Int("port", 0, "API server port (overrides config)")
	dbPath     = flag.String("db-path", "", "Database path (default: ~/.commander-companion/companion.db)")
	configFile = flag.String("config", "", "Config file path (default: ~/.commander-companion/config.toml)")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *debug || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting Commander Companion", "port", cfg.Server.Port, "database", cfg.Database.Path)

	dbConfig := storage.DefaultConfig(cfg.Database.Path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	var client *scryfall.Client
	if cfg.Scryfall.BaseURL != "" {
		client = scryfall.NewClientWithBaseURL(cfg.Scryfall.BaseURL)
	} else {
		client = scryfall.NewClient()
	}

	vocab, err := loadVocabulary(cfg, logger)
	if err != nil {
		return err
	}

	builder := deck.NewBuilder(client, vocab, deck.Options{
		StapleFetch:       cfg.Builder.StapleFetch,
		SignatureFetch:    cfg.Builder.SignatureFetch,
		FinisherDetection: cfg.Builder.FinisherDetection,
		DensityCheck:      cfg.Builder.DensityCheck,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Builder.WatchVocabulary {
		go func() {
			if err := builder.WatchVocabulary(ctx, cfg.Builder.VocabularyFile); err != nil && ctx.Err() == nil {
				logger.Error("vocabulary watcher stopped", "error", err)
			}
		}()
	}

	collectionRepo := repository.NewCollectionRepository(db.Conn())
	deckRepo := repository.NewDeckRepository(db.Conn())
	collectionService := collection.NewService(collectionRepo, client, logger)

	server := api.NewServer(&api.Config{Port: cfg.Server.Port}, &api.Handlers{
		Collection: handlers.NewCollectionHandler(collectionService),
		Deck:       handlers.NewDeckHandler(builder, collectionService, deckRepo, logger),
		Card:       handlers.NewCardHandler(client),
	}, logger)

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	logger.Info("API server running", "url", fmt.Sprintf("http://localhost:%d", server.Port()))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}

	return nil
}

func loadVocabulary(cfg *config.Config, logger *slog.Logger) (*deck.Vocabulary, error) {
	if cfg.Builder.VocabularyFile == "" {
		return deck.DefaultVocabulary(), nil
	}
	vocab, err := deck.LoadVocabulary(cfg.Builder.VocabularyFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("vocabulary file missing, using defaults", "path", cfg.Builder.VocabularyFile)
			return deck.DefaultVocabulary(), nil
		}
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	logger.Info("vocabulary loaded", "path", cfg.Builder.VocabularyFile)
	return vocab, nil
}
