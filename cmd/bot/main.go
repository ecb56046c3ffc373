package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	itelegram "homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The notification channel itself may be unconfigured here, so no
		// alert is attempted. Fatalf exits non-zero.
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Log

	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d",
		cfg.LogLevel, cfg.Environment, cfg.TelegramChatID)

	// The bot only sends messages; no poller for inbound updates is needed.
	bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}

	notifier := app.NewNotifier(itelegram.NewTelebotAdapter(bot), cfg.TelegramChatID, log)
	statusClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.HTTPTimeout, log)
	poller := app.NewPollerService(statusClient, notifier, log, cfg.PollInterval, time.Now())

	summary := scheduler.NewSummaryScheduler(poller, notifier, log, cfg.CronSpecSummary)
	summary.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Application setup complete. Poller is starting...")
	poller.Run(ctx)

	log.Info("Shutting down application...")
	summary.Stop()
	log.Info("Application shut down gracefully.")
}
