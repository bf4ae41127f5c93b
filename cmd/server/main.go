package main

import (
	"go.uber.org/zap"

	"github.com/rahulrajesh21/Ticket-Booking-system/internal/app"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	zap.L().Info("starting seat coordinator",
		zap.String("env", cfg.Env),
		zap.Int("seats", cfg.SeatCount),
		zap.Duration("lock_ttl", cfg.LockTTL),
	)

	srv := app.NewServer(cfg)
	if err := srv.Run(); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
