package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/handiism/ytbatch/internal/app"
	"github.com/handiism/ytbatch/internal/config"
	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/model"
	"github.com/handiism/ytbatch/internal/tui"
)

// runtime is what every command needs once setup succeeded.
type runtime struct {
	ctx     context.Context
	app     *app.App
	kind    model.DownloadKind
	verbose bool
	log     *zap.SugaredLogger
}

// withRuntime loads settings, builds the logger, provisions the tools and
// installs the interrupt handler before running action.
func withRuntime(action func(rt *runtime, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		settings, err := loadSettings(c)
		if err != nil {
			return err
		}

		kind, err := model.ParseKind(c.String("kind"))
		if err != nil {
			return err
		}

		log, err := logger.New(settings.LogLevel, settings.LogFormat)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := context.WithCancel(c.Context)
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			select {
			case <-sigCh:
				fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
				cancel()
			case <-ctx.Done():
			}
		}()

		a, err := app.New(ctx, settings, log)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		return action(&runtime{
			ctx:     ctx,
			app:     a,
			kind:    kind,
			verbose: c.Bool("verbose"),
			log:     log,
		}, c)
	}
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("output") {
		settings.DownloadDir = c.String("output")
	}
	if c.IsSet("parallel") {
		settings.MaxParallelDownloads = c.Int("parallel")
	}
	if c.IsSet("log-format") {
		settings.LogFormat = c.String("log-format")
	}
	if c.Bool("verbose") {
		settings.LogLevel = "debug"
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// printEvent prints a progress event, hiding verbose ones unless asked.
func (rt *runtime) printEvent(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !rt.verbose {
		return
	}
	fmt.Println(tui.RenderEvent(event))
}

// runBatch downloads urls, prints the summary and sets the exit code.
func (rt *runtime) runBatch(urls []string) {
	r, reportPath := rt.app.Run(rt.ctx, urls, rt.kind, app.Hooks{OnProgress: rt.printEvent})

	fmt.Println()
	fmt.Println(tui.RenderSummary(r))
	if failures := tui.RenderFailures(r); failures != "" {
		fmt.Println()
		fmt.Print(failures)
	}
	if reportPath != "" {
		fmt.Printf("\nFailure report saved to %s\n", reportPath)
	}

	exitCode = app.ExitCode(r)
}
