// Package download fetches installer payloads over HTTP.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"

	"hmss/internal/logger"
)

// Fetcher saves the body at a URL to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// Client is the resty-backed Fetcher.
type Client struct {
	http *resty.Client
}

// NewClient returns a Client that follows redirects.
func NewClient() *Client {
	return &Client{http: resty.New().SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))}
}

// Fetch downloads url into destPath. A partial or error response never
// leaves a file behind.
func (c *Client) Fetch(ctx context.Context, url, destPath string) error {
	logger.Debug("[DEBUG] Downloading %s to %s\n", url, destPath)

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	body := resp.RawBody()
	defer func() {
		if cerr := body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("download of %s failed with HTTP status %d", url, resp.StatusCode())
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded %s\n", destPath)
	return nil
}
