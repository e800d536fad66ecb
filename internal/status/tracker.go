package status

import (
	"log/slog"
	"slices"
)

// NoPort is the port value that marks the viewer as stopped.
const NoPort = "<none>"

// JupyterLibrary is the display name the kernel package is shown under; its
// node carries the companion extension indicator.
const JupyterLibrary = "jupyter"

var (
	// displayAliases maps package names to the name shown in the tree.
	displayAliases = map[string]string{"ipykernel": JupyterLibrary}
	// hiddenLibraries are internal dependencies never shown.
	hiddenLibraries = map[string]bool{"ocp_tessellate": true}
)

// State is a copy of the tracker's state.
type State struct {
	Installed          bool
	Running            bool
	Port               string
	Libraries          []string
	ExtensionInstalled bool
}

// VersionSource looks up the installed version of a library.
type VersionSource interface {
	Version(library string) (string, bool)
}

// Tracker holds the viewer status. It is not safe for concurrent use; all
// calls are expected from a single goroutine.
type Tracker struct {
	viewerLibrary string
	displayName   string
	versions      VersionSource
	logger        *slog.Logger

	state     State
	sources   map[string]string // display name -> package name
	observers []func()
}

// NewTracker returns a stopped tracker for the given viewer library.
// versions may be nil until SetVersionSource is called.
func NewTracker(viewerLibrary, displayName string, versions VersionSource, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		viewerLibrary: viewerLibrary,
		displayName:   displayName,
		versions:      versions,
		logger:        logger,
		sources:       make(map[string]string),
	}
}

// SetVersionSource sets where library versions are looked up.
func (t *Tracker) SetVersionSource(v VersionSource) {
	t.versions = v
}

// OnChange registers fn to be called after every state change.
func (t *Tracker) OnChange(fn func()) {
	t.observers = append(t.observers, fn)
}

func (t *Tracker) notify() {
	for _, fn := range t.observers {
		fn()
	}
}

// Refresh applies a port report: NoPort stops the viewer, an empty port
// leaves the state untouched, anything else marks it running on that port.
// Observers are notified in every case.
func (t *Tracker) Refresh(port string) {
	switch port {
	case NoPort:
		t.state.Running = false
		t.state.Port = ""
	case "":
	default:
		t.state.Running = true
		t.state.Port = port
	}
	t.logger.Debug("viewer status refreshed", "running", t.state.Running, "port", t.state.Port)
	t.notify()
}

// SetLibraries replaces the tracked libraries with the installed package
// names. The viewer itself and internal dependencies are not listed;
// ipykernel is listed as jupyter.
func (t *Tracker) SetLibraries(names []string) {
	t.state.Installed = slices.Contains(names, t.viewerLibrary)
	t.state.Libraries = nil
	t.sources = make(map[string]string)

	for _, name := range names {
		if name == t.viewerLibrary || hiddenLibraries[name] {
			continue
		}
		display := name
		if alias, ok := displayAliases[name]; ok {
			display = alias
		}
		t.state.Libraries = append(t.state.Libraries, display)
		t.sources[display] = name
	}
	t.notify()
}

// SetExtension records whether the companion extension is installed.
func (t *Tracker) SetExtension(present bool) {
	t.state.ExtensionInstalled = present
	t.notify()
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	s := t.state
	s.Libraries = slices.Clone(t.state.Libraries)
	return s
}

// Running reports whether the viewer is running.
func (t *Tracker) Running() bool { return t.state.Running }

// Port returns the viewer port, or "" when stopped.
func (t *Tracker) Port() string { return t.state.Port }

func (t *Tracker) version(library string) string {
	if t.versions == nil {
		return ""
	}
	v, _ := t.versions.Version(library)
	return v
}
