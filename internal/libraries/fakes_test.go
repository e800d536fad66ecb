package libraries

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/pyenv"
	"github.com/ocp-tools/ocpview/internal/terminal"
)

type fakeRunner struct {
	outputs map[string]*pyenv.Output
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*pyenv.Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return &pyenv.Output{ExitCode: 1, Stderr: "No module named pip"}, nil
}

type recordingNotifier struct {
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *recordingNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

type fakeSink struct{ names []string }

func (s *fakeSink) SetLibraries(names []string) { s.names = names }

type fakePorts struct{ port string }

func (p fakePorts) Running() bool { return p.port != "" }
func (p fakePorts) Port() string  { return p.port }

type fakePrompter struct {
	answer bool
	asked  []string
}

func (p *fakePrompter) Confirm(q string) (bool, error) {
	p.asked = append(p.asked, q)
	return p.answer, nil
}

// fakeTerminal records the lines sent and exits after a line ending in exit.
type fakeTerminal struct {
	mu      sync.Mutex
	lines   []string
	done    chan struct{}
	once    sync.Once
	exitErr error
}

func (f *fakeTerminal) Name() string { return TerminalName }

func (f *fakeTerminal) SendText(line string) error {
	f.mu.Lock()
	f.lines = append(f.lines, line)
	f.mu.Unlock()
	if strings.HasSuffix(line, "exit") {
		f.once.Do(func() { close(f.done) })
	}
	return nil
}

func (f *fakeTerminal) Done() <-chan struct{} { return f.done }

func (f *fakeTerminal) Err() error { return f.exitErr }

func (f *fakeTerminal) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}

type fakeOpener struct {
	opened []*fakeTerminal
	// exitErr is what opened terminals report once they exit.
	exitErr error
}

func (o *fakeOpener) Open(context.Context, string) (terminal.Terminal, error) {
	term := &fakeTerminal{done: make(chan struct{}), exitErr: o.exitErr}
	o.opened = append(o.opened, term)
	return term, nil
}

type memEditor struct{ lines []string }

func (e *memEditor) InsertLines(lines []string) error {
	e.lines = append(e.lines, lines...)
	return nil
}

const (
	testPython = "/venv/bin/python"
	pipKey     = testPython + " -m pip list -v --format json"
	versionKey = testPython + " --version"
)

const pipOutput = `[
  {"name": "ocp-vscode", "version": "2.8.0", "location": "/home/u/venv/lib/python3.12/site-packages", "installer": "pip"},
  {"name": "ocp-tessellate", "version": "3.0.9", "location": "/home/u/venv/lib/python3.12/site-packages", "installer": "pip"},
  {"name": "build123d", "version": "0.9.1", "location": "/home/u/venv/lib/python3.12/site-packages", "installer": "pip",
   "editable_project_location": "/src/build123d"},
  {"name": "numpy", "version": "2.1.0", "location": "/home/u/venv/lib/python3.12/site-packages", "installer": "pip"}
]`

func testSnapshot() *config.Snapshot {
	return &config.Snapshot{
		RequiredPython: "3.10,3.11,3.12",
		ViewerVersion:  "2.8.0",
		TerminalDelay:  time.Millisecond,
		InstallCommands: map[string]interface{}{
			"ocp_vscode": []interface{}{"{unset_conda} {python} -m pip install ocp_vscode=={ocp_vscode_version}"},
			"build123d":  []interface{}{"{python} -m pip install build123d"},
			"cadquery":   []interface{}{"{python} -m pip install cadquery"},
		},
		CodeSnippets: map[string]interface{}{
			"ocp_vscode": []interface{}{"from ocp_vscode import show, show_object, set_port"},
			"build123d":  []interface{}{"from build123d import *"},
			"cadquery":   "import cadquery as cq",
		},
		ExampleDownloads: map[string]interface{}{
			"build123d": map[string]interface{}{"zip": "https://example.invalid/dev.zip", "example_path": "build123d-dev/examples"},
			"cadquery":  []interface{}{"https://example.invalid/cq.zip"},
		},
	}
}

type fixture struct {
	tracker  *Tracker
	runner   *fakeRunner
	notifier *recordingNotifier
	sink     *fakeSink
}

func newFixture(port string) *fixture {
	f := &fixture{
		runner: &fakeRunner{outputs: map[string]*pyenv.Output{
			pipKey:     {Stdout: pipOutput},
			versionKey: {Stdout: "Python 3.12.3"},
		}},
		notifier: &recordingNotifier{},
		sink:     &fakeSink{},
	}
	f.tracker = NewTracker(Options{
		Runner:        f.runner,
		Notifier:      f.notifier,
		Sink:          f.sink,
		Ports:         fakePorts{port: port},
		ViewerLibrary: "ocp_vscode",
		GOOS:          "linux",
	})
	return f
}

func (f *fixture) refresh() error {
	return f.tracker.Refresh(context.Background(), testSnapshot(), testPython)
}
