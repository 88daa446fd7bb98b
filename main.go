package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nikhil2005306/waifu-bot/waifubot"
	"github.com/Nikhil2005306/waifu-bot/waifubot/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting WaifuBot store",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	verifyMedia := flag.Bool("verify-media", false, "check that every card's media still exists in the bucket")
	flag.Parse()

	cfg, err := waifubot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	b := waifubot.New(*cfg, version, commit)
	if err := b.SetupStores(ctx); err != nil {
		slog.Error("Failed to set up stores",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer b.Close()

	slog.Info("Database ready",
		slog.String("path", cfg.DB.Path),
		slog.Duration("took", time.Since(dbStartTime)))

	if *verifyMedia {
		cards, err := b.CardRepository.GetAll(ctx)
		if err != nil {
			slog.Error("Failed to load card catalog", slog.Any("error", err))
			os.Exit(-1)
		}
		missing, err := b.MediaService.VerifyCardMedia(ctx, cards)
		if err != nil {
			slog.Error("Media verification failed", slog.Any("error", err))
			os.Exit(-1)
		}
		slog.Info("Media verification complete",
			slog.Int("cards", len(cards)),
			slog.Int("missing", len(missing)))
		for _, id := range missing {
			slog.Warn("Card media missing from bucket", slog.Int64("card_id", id))
		}
		return
	}

	logger.LogSystem("Store initialized, waiting for shutdown signal")

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	slog.Info("Shutting down...")
}
