package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nameprogrammeronpy/Tgroshewa/config"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/bot"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/health"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("config load failed")
	}

	log := newLogger(cfg.LogLevel)

	db, err := database.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer db.Close()

	// Стартовые данные досоздаются на каждом запуске.
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("database seed failed")
	}

	b, err := bot.NewBot(cfg.BotToken, db, cfg.Admins, log)
	if err != nil {
		log.Fatal().Err(err).Msg("bot create failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return health.NewServer(cfg.Port, log).Run(ctx)
	})
	g.Go(func() error {
		b.Start()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("shutdown with error")
	}
}

func newLogger(level string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLogLevel(level))
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().
		Timestamp().
		Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
