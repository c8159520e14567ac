package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/handiism/ytbatch/internal/app"
)

// exitCode is set by the commands; setup errors leave it at ExitFailure.
var exitCode = app.ExitOK

func main() {
	cliApp := &cli.App{
		Name:  "ytbatch",
		Usage: "download audio or video from single links, playlists or URL lists",
		Description: "Media is fetched with yt-dlp and transcoded with ffmpeg. Items whose " +
			"title already exists in the output directory are skipped. Failed items are " +
			"listed in failed_downloads.txt inside the output directory.\n\n" +
			"For interactive mode, use: ytbatch-tui",
		Flags: globalFlags(),
		Commands: []*cli.Command{{
			Name:      "get",
			Usage:     "download a single item, or a whole playlist with --playlist",
			ArgsUsage: "URL",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "playlist",
					Usage: "download every item of the playlist the URL belongs to",
				},
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Usage:   "do not ask for confirmation before a playlist download",
				},
			},
			Action: withRuntime(getAction),
		}, {
			Name:      "batch",
			Usage:     "download many URLs in parallel, expanding playlists",
			ArgsUsage: "[URL...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "read URLs from `FILE`, one per line (- for stdin)",
				},
				&cli.BoolFlag{
					Name:  "no-expand",
					Usage: "do not expand playlists (watch URLs with a list= parameter download the single video; playlist-only URLs fail)",
				},
			},
			Action: withRuntime(batchAction),
		}, {
			Name:      "expand",
			Usage:     "print the item URLs of a playlist",
			ArgsUsage: "URL",
			Action:    withRuntime(expandAction),
		}},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if exitCode == app.ExitOK {
			exitCode = app.ExitFailure
		}
	}
	os.Exit(exitCode)
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML or JSON config `FILE`",
			EnvVars: []string{"YTBATCH_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output `DIR` (overrides config)",
		},
		&cli.IntFlag{
			Name:    "parallel",
			Aliases: []string{"p"},
			Usage:   "maximum concurrent downloads (overrides config)",
		},
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "what to download: audio or video",
			Value:   "audio",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "show verbose output and debug logs",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log format: console or json (overrides config)",
		},
	}
}
