package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/handiism/ytbatch/internal/app"
	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/tui"
)

func getAction(rt *runtime, c *cli.Context) error {
	url, err := singleURL(c)
	if err != nil {
		return err
	}

	if download.IsPlaylistURL(url) {
		if c.Bool("playlist") {
			return downloadPlaylist(rt, url, c.Bool("yes"))
		}
		rt.log.Infow("URL belongs to a playlist, downloading only this item (use --playlist for all)", "url", url)
	}

	res := rt.app.Downloader.DownloadOne(rt.ctx, url, rt.kind)
	fmt.Println(tui.RenderResult(res))

	switch {
	case rt.ctx.Err() != nil:
		exitCode = app.ExitInterrupted
	case res.IsFailed():
		exitCode = app.ExitFailure
	}
	return nil
}

func downloadPlaylist(rt *runtime, url string, yes bool) error {
	playlist := rt.app.Expander.Describe(rt.ctx, url)
	if rt.ctx.Err() != nil {
		exitCode = app.ExitInterrupted
		return nil
	}

	fmt.Printf("Playlist: %s\nItems: %d\n\n", playlist.Title, len(playlist.URLs))
	if len(playlist.URLs) == 0 {
		return errors.New("playlist has no downloadable items")
	}

	prompt := fmt.Sprintf("Download %d item(s) from playlist '%s'?", len(playlist.URLs), playlist.Title)
	if !yes && !confirm(os.Stdin, os.Stdout, prompt) {
		fmt.Println("Playlist download cancelled.")
		return nil
	}

	rt.runBatch(playlist.URLs)
	return nil
}

func batchAction(rt *runtime, c *cli.Context) error {
	urls := c.Args().Slice()

	if file := c.String("file"); file != "" {
		fromFile, err := readURLFile(file)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}

	valid, rejected := app.Validate(urls)
	for _, u := range rejected {
		rt.printEvent(download.ProgressEvent{Message: "Ignoring unsupported URL: " + u, Level: download.LevelWarning})
	}
	if len(valid) == 0 {
		return errors.New("no URLs to download")
	}

	rt.log.Infow("Batch mode", "urls", len(valid))
	if !c.Bool("no-expand") {
		valid = rt.app.Expander.ExpandAll(rt.ctx, valid)
	}
	if rt.ctx.Err() != nil {
		exitCode = app.ExitInterrupted
		return nil
	}

	rt.runBatch(valid)
	return nil
}

func expandAction(rt *runtime, c *cli.Context) error {
	url, err := singleURL(c)
	if err != nil {
		return err
	}

	playlist := rt.app.Expander.Describe(rt.ctx, url)
	fmt.Fprintf(os.Stderr, "%s (%d items)\n", playlist.Title, len(playlist.URLs))
	for _, u := range playlist.URLs {
		fmt.Println(u)
	}
	return nil
}

func singleURL(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one URL, got %d", c.NArg())
	}
	url := strings.TrimSpace(c.Args().First())
	if !app.IsSupportedURL(url) {
		return "", fmt.Errorf("unsupported URL: %s", url)
	}
	return url, nil
}

func readURLFile(path string) ([]string, error) {
	if path == "-" {
		return app.ReadURLs(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	return app.ReadURLs(f)
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
