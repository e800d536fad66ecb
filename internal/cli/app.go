package cli

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ocp-tools/ocpview/internal/branding"
	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/libraries"
	"github.com/ocp-tools/ocpview/internal/pyenv"
	"github.com/ocp-tools/ocpview/internal/status"
	"github.com/ocp-tools/ocpview/internal/ui"
	"github.com/ocp-tools/ocpview/internal/viewerstate"
	"github.com/spf13/cobra"
)

// runner executes interpreter and editor subprocesses; tests replace it.
var runner pyenv.Runner = &pyenv.ExecRunner{}

// httpClient is used for downloads and release checks; tests replace it.
var httpClient = http.DefaultClient

// app wires the two trackers together for one command invocation.
type app struct {
	snap     *config.Snapshot
	status   *status.Tracker
	libs     *libraries.Tracker
	styles   ui.Styles
	notifier *ui.Notifier
	logger   *slog.Logger
}

func newApp(cmd *cobra.Command) *app {
	snap := config.Current()
	logger := slog.Default()
	styles := ui.NewStyles(ui.NewRenderer(cmd.OutOrStdout()))
	notifier := ui.NewNotifier(cmd.ErrOrStderr(), ui.NewStyles(ui.NewRenderer(cmd.ErrOrStderr())))

	st := status.NewTracker(branding.ViewerLibrary(), branding.DisplayName(), nil, logger)
	libs := libraries.NewTracker(libraries.Options{
		Runner:        runner,
		Notifier:      notifier,
		Sink:          st,
		Ports:         st,
		Logger:        logger,
		HTTPClient:    httpClient,
		ViewerLibrary: branding.ViewerLibrary(),
	})
	st.SetVersionSource(libs)

	return &app{
		snap:     snap,
		status:   st,
		libs:     libs,
		styles:   styles,
		notifier: notifier,
		logger:   logger,
	}
}

// refresh lists the libraries of python (or the configured interpreter).
// A failed listing is reported to the user and otherwise ignored so the
// remaining output can still be shown.
func (a *app) refresh(ctx context.Context, python string) {
	if err := a.libs.Refresh(ctx, a.snap, python); err != nil {
		a.logger.Debug("library refresh failed", "err", err)
	}
}

// refreshPort sets the viewer status from port, or from the first port
// registered in the viewer state file when port is empty.
func (a *app) refreshPort(ctx context.Context, port string) {
	if port == "" {
		port = discoverPort(ctx, a.logger)
	}
	a.status.Refresh(port)
}

func stateStore() (*viewerstate.Store, error) {
	path, err := viewerstate.DefaultPath(branding.ViewerStateFile())
	if err != nil {
		return nil, err
	}
	return viewerstate.New(path), nil
}

// discoverPort returns the lowest registered viewer port or status.NoPort.
func discoverPort(ctx context.Context, logger *slog.Logger) string {
	store, err := stateStore()
	if err != nil {
		logger.Debug("no viewer state file", "err", err)
		return status.NoPort
	}
	ports, err := store.Ports(ctx)
	if err != nil {
		logger.Warn("reading viewer state failed", "path", store.Path(), "err", err)
		return status.NoPort
	}
	if len(ports) == 0 {
		return status.NoPort
	}
	return ports[0]
}
