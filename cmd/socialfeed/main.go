package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whatyouseeau/socialfeed/internal/app"
	"github.com/whatyouseeau/socialfeed/internal/config"
	"go.uber.org/fx"
)

const startStopTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a yaml or json config file, environment variables take precedence")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), config.Usage())
	}

	flag.Parse()

	cfg, err := config.Read(*configPath)

	if err != nil {
		slog.Error("Failed to read config", "error", err)
		os.Exit(1)
	}

	application := fx.New(
		fx.Supply(cfg),
		app.Module,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), startStopTimeout)
	defer cancel()

	if err := application.Start(startCtx); err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	logger := slog.Default()

	// fx relays SIGINT and SIGTERM here along with failure shutdowns
	sig := <-application.Wait()
	exitCode := sig.ExitCode

	logger.Info("Starting graceful shutdown...", "signal", sig.Signal)

	// If we receive another signal, exit immediately
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received second shutdown signal, exiting immediately...")
		os.Exit(1)
	}()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), startStopTimeout)
	defer stopCancel()

	if err := application.Stop(stopCtx); err != nil {
		logger.Error("Failed to stop application", "error", err)
		exitCode = 1
	}

	logger.Info("Server exited gracefully")
	os.Exit(exitCode)
}
