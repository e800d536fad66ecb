package examples

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Fetcher downloads example archives.
type Fetcher struct {
	httpClient *http.Client
	progress   io.Writer
	userAgent  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithProgress sets where download progress is printed. Nil disables it.
func WithProgress(w io.Writer) Option {
	return func(f *Fetcher) {
		f.progress = w
	}
}

// New creates a Fetcher. Progress goes to stderr unless overridden.
func New(userAgent string, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		progress:   os.Stderr,
		userAgent:  userAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the zip archive at url and extracts the files below
// examplePath into destDir. It returns the number of files written.
func (f *Fetcher) Fetch(ctx context.Context, url, examplePath, destDir string) (int, error) {
	tmpDir, err := os.MkdirTemp("", "ocpview-examples-*")
	if err != nil {
		return 0, fmt.Errorf("creating download directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archive, err := f.Download(ctx, url, tmpDir)
	if err != nil {
		return 0, err
	}
	return Extract(archive, examplePath, destDir)
}
