package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MimeLyc/sanzang/internal/command"
	"github.com/MimeLyc/sanzang/internal/config"
	"github.com/MimeLyc/sanzang/internal/platform"
	"github.com/MimeLyc/sanzang/pkg/log"
)

// Version information (set via -ldflags during build)
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}

	if cfg.Log.File != "" {
		fileLogger, err := log.NewFileLogger(cfg.Log.File, cfg.LogLevel())
		if err != nil {
			log.Fatal("Failed to open log file: %v", err)
		}
		defer fileLogger.Close()
		log.SetLogger(fileLogger.Logger)
	} else {
		log.InitLogger(cfg.LogLevel())
	}

	// Writes to a closed pipe fail with EPIPE instead of killing the process.
	signal.Ignore(syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status := command.Execute(ctx, os.Args[1:], command.StdStreams(),
		command.WithCapabilities(platform.Host()),
		command.WithConfig(cfg),
		command.WithVersion(version),
	)
	log.Debug("Exit status: %s", status)
	return status.ExitCode()
}
