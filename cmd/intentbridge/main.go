package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guardian/internal/intent"
)

func main() {
	defAddr := os.Getenv("GUARDIAN_BRIDGE_ADDR")
	if defAddr == "" {
		defAddr = ":8090"
	}
	addr := flag.String("addr", defAddr, "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	bridge := intent.NewBridge(logger)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           bridge.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("intent bridge listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("intent bridge stopped", "error", err)
		os.Exit(1)
	}
}
