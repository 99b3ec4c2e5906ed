package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

func main() {
	var (
		amount     = flag.Int("amount", 10, "Questions to request per category (1-50)")
		categories = flag.String("categories", "", "Comma-separated local category ids; empty imports every category")
		difficulty = flag.String("difficulty", "", "easy, medium or hard; empty imports all")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	ids, err := parseCategories(*categories)
	if err != nil {
		logger.Fatal().Err(err).Str("categories", *categories).Msg("invalid category list")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	backend, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer backend.Close()

	client := importer.NewOpenTDBClient(cfg.OpenTDB.BaseURL, &http.Client{Timeout: cfg.OpenTDB.Timeout})
	im := importer.New(client, repository.NewQuestionRepository(backend.Store))

	report, err := im.Run(ctx, importer.Options{
		Amount:     *amount,
		Categories: ids,
		Difficulty: *difficulty,
		Pause:      cfg.OpenTDB.Pause,
	})
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}
	event.
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("duplicates", report.Duplicates).
		Int("skipped", report.Skipped).
		Msg("import finished")
	if err != nil {
		backend.Close()
		os.Exit(1)
	}
}

func parseCategories(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
