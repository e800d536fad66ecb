package libraries

import (
	"context"
	"fmt"

	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/examples"
)

// DownloadExamples fetches the configured example archive of library and
// extracts its examples into dest.
func (t *Tracker) DownloadExamples(ctx context.Context, library, dest string) (int, error) {
	dl, ok, valid := t.snap.Download(library)
	if !ok {
		return 0, fmt.Errorf("%w: no examples configured for %s", ErrUnknownLibrary, library)
	}
	if !valid {
		err := shapeError(config.KeyExampleDownloads, library, t.snap.ExampleDownloads[library])
		return 0, t.report(fmt.Sprintf("Invalid configuration: %v", err), err)
	}

	f := examples.New("ocpview", examples.WithHTTPClient(t.httpClient))
	n, err := f.Fetch(ctx, dl.URL, dl.ExamplePath, dest)
	if err != nil {
		err = fmt.Errorf("downloading %s examples: %w", library, err)
		return 0, t.report(fmt.Sprintf("Downloading %s examples failed: %v", library, err), err)
	}
	t.notifier.Info(fmt.Sprintf("Extracted %d %s examples to %s", n, library, dest))
	return n, nil
}
