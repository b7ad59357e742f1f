package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"omr-bot/config"
	telegram "omr-bot/internal/api"
	app "omr-bot/internal/application"
	"omr-bot/internal/container"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/infrastructure/rendition"
	"omr-bot/internal/infrastructure/storage"
	"omr-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Создаём хранилища
	userRepo := storage.NewMemoryUserRepository()
	var resultRepo port.ResultRepository = storage.NewMemoryResultRepository()
	if cfg.DatabaseURL != "" {
		db, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		resultRepo = storage.NewPostgresResultRepository(db)
		log.Println("Results are stored in Postgres")
	}

	// Распознавание бланков
	scorer := vision.NewScorer(cfg.OMR, rendition.New(cfg.Rendition))

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, resultRepo, scorer, app.GradingOptions{
		DebugDir: cfg.DebugDir,
		Debug:    cfg.Debug,
		Workers:  cfg.Workers,
	})

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}
