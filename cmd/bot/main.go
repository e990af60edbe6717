package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"drugbot/internal/auth"
	"drugbot/internal/config"
	"drugbot/internal/dataset"
	"drugbot/internal/drug"
	"drugbot/internal/scheduler"
	"drugbot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	ctx := context.Background()

	downloadURL := cfg.DBDownloadURL
	if downloadURL == "" && cfg.GDriveFileID != "" {
		downloadURL = dataset.GDriveURL(cfg.GDriveFileID)
	}
	if err := dataset.Ensure(ctx, cfg.DBFilePath, downloadURL); err != nil {
		log.Fatalf("failed to provision reference db: %v", err)
	}

	store, err := drug.NewStore(cfg.DBFilePath)
	if err != nil {
		log.Fatalf("failed to open reference db: %v", err)
	}
	defer store.Close()
	if n, err := store.Rows(); err != nil {
		log.Fatalf("reference db unusable: %v", err)
	} else {
		log.Printf("✅ Drug reference db loaded: %d rows", n)
	}

	var allowRepo auth.Repository
	if cfg.AllowlistFilePath != "" {
		repo, err := auth.NewFileRepository(cfg.AllowlistFilePath)
		if err != nil {
			log.Printf("failed to init allowlist repo: %v", err)
		} else {
			allowRepo = repo
		}
	}
	authSvc, err := auth.NewWithRepo(allowRepo, cfg.AllowedUsers)
	if err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		authSvc,
		store,
		drug.NewClassifier(store),
		cfg.AdminUserID,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.PendingFilePath != "" {
		repo, err := auth.NewFileRepository(cfg.PendingFilePath)
		if err != nil {
			log.Printf("failed to init pending repo: %v", err)
		} else {
			bot.SetPendingRepo(repo)
		}
	}

	sched := scheduler.New(cfg.DailyReportCron)
	sched.SetReportFunction(bot.SendUsageReport)
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot.Start(ctx)
}
