// Package http provides the small HTTP client ytbatch uses for auxiliary
// resources, currently video thumbnails that end up as cover art.
//
//	client := http.NewClient(30 * time.Second)
//	thumb, err := client.DownloadBytes(ctx, "https://i.ytimg.com/vi/abc/hqdefault.jpg")
package http
