package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rahulrajesh21/Ticket-Booking-system/internal/api"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/config"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/hub"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/seat"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/session"
)

type Server struct {
	httpServer *http.Server

	Hub      *hub.Hub
	Store    *seat.Store
	Sessions *session.Registry
}

func NewServer(cfg config.Config) *Server {
	store := seat.NewStore(cfg.SeatCount)
	h := hub.New()

	// Every successful mutation (and every lock expiry) pushes the full
	// snapshot to every connected client.
	deps := seat.Deps{
		Broadcast: func(snapshot []seat.View) {
			h.Broadcast(api.Event{Type: api.EventSeatsUpdate, Data: snapshot})
		},
	}

	locks := seat.NewLockManager(store, cfg.LockTTL, deps)
	bookings := seat.NewBookingEngine(store, deps)
	sessions := session.NewRegistry(store.BookedBy)

	handler := &api.Handler{Store: store, Sessions: sessions, Hub: h}
	ws := &api.WSHandler{Hub: h, Store: store, Locks: locks, Bookings: bookings, Sessions: sessions}

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: api.SetupRoutes(handler, ws),
		},
		Hub:      h,
		Store:    store,
		Sessions: sessions,
	}
}

func (s *Server) Run() error {
	go func() {
		zap.L().Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
