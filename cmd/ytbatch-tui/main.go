package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/handiism/ytbatch/internal/app"
	"github.com/handiism/ytbatch/internal/config"
	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/model"
	"github.com/handiism/ytbatch/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to config file")
		outputFlag = flag.String("output", "", "Output directory (overrides config)")
		kindFlag   = flag.String("kind", "audio", "Initial download kind: audio or video")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *outputFlag != "" {
		settings.DownloadDir = *outputFlag
	}

	kind, err := model.ParseKind(*kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns the terminal; only errors are logged.
	settings.LogLevel = "error"
	log, err := logger.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	a, err := app.New(context.Background(), settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(a, kind); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
