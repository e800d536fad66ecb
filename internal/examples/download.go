package examples

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const archiveName = "examples.zip"

// Download fetches url into destDir and returns the archive path.
func (f *Fetcher) Download(ctx context.Context, url, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s returned status %d", url, resp.StatusCode)
	}

	destPath := filepath.Join(destDir, archiveName)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer out.Close()

	var body io.Reader = resp.Body
	if f.progress != nil && resp.ContentLength > 0 {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, w: f.progress, last: -1}
	}
	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}
	if f.progress != nil && resp.ContentLength > 0 {
		fmt.Fprintln(f.progress)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing download file: %w", err)
	}
	return destPath, nil
}

type progressReader struct {
	r     io.Reader
	w     io.Writer
	total int64
	read  int64
	last  int
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if percent := int(p.read * 100 / p.total); percent != p.last {
		fmt.Fprintf(p.w, "\rDownloading... %d%%", percent)
		p.last = percent
	}
	return n, err
}
