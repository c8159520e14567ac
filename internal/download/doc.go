// Package download holds the download core: the availability prober, the
// single-item downloader, the playlist expander and the batch orchestrator.
//
// # Downloader
//
// Downloader.DownloadOne handles one URL:
//
//  1. Probe the metadata (no media bytes)
//  2. Skip if a file named after the sanitized title already exists
//  3. Fetch and post-process exactly this item
//
// Every failure is captured in the returned model.DownloadResult.
//
// # Batch
//
// Batch.Run fans URLs out to an ItemDownloader with an errgroup limit and
// collects the results on a single goroutine:
//
//	batch := download.NewBatch(downloader, log)
//	batch.OnProgress = func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	}
//	report := batch.Run(ctx, urls, model.KindAudio, settings.MaxParallelDownloads)
//
// Failures never cross the batch boundary. Without cancellation the report
// holds exactly one result per input URL.
//
// # Retry Logic
//
// The core does not retry. WithRetry wraps an ItemDownloader with bounded
// exponential backoff, configurable via settings.DownloadMaxRetries and
// settings.DownloadRetryCooldown.
//
// # Playlists
//
// Expander lists collection URLs in flat mode and rebuilds one watch URL
// per entry. Listing failures fall back to the original URL.
package download
