package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize caps in-memory downloads. Thumbnails are far smaller.
const maxBodySize = 20 << 20

// Client fetches small auxiliary resources such as thumbnails.
//
// Media streams themselves are downloaded by the extractor, never by this
// client.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client with the given timeout. A non-positive timeout
// falls back to 60 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "ytbatch",
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if the request fails, the status is not 200 OK or the
// body exceeds the size cap.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, maxBodySize)
	}
	return data, nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like thumbnails.
//
//	thumb, err := client.DownloadBytes(ctx, info.Thumbnail)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
