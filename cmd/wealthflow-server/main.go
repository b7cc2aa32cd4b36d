package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wealthflow/wealthflow/internal/app"
	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to wealthflow.toml")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := server.NewServer(a)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.Logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", a.Config.Environment).
		Msg("WealthFlow server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.Logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		a.Logger.Error().Err(err).Msg("Server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}

	a.Logger.Info().Msg("Server stopped")
}
