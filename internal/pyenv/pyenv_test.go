package pyenv

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeRunner returns canned output keyed by the joined command line.
type fakeRunner struct {
	outputs map[string]*Output
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return &Output{ExitCode: 127, Stderr: "not found"}, nil
}

const pipKey = "/venv/bin/python -m pip list -v --format json"

func TestListPackages(t *testing.T) {
	r := &fakeRunner{outputs: map[string]*Output{
		pipKey: {Stdout: `[
  {"name": "build123d", "version": "0.9.1", "location": "/venv/lib/python3.12/site-packages", "installer": "pip"},
  {"name": "ocp-vscode", "version": "2.8.0", "location": "/venv/lib/python3.12/site-packages", "installer": "pip",
   "editable_project_location": "/src/ocp_vscode"}
]`},
	}}

	pkgs, err := ListPackages(context.Background(), r, "/venv/bin/python")
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("got %d packages, want 2", len(pkgs))
	}
	if pkgs[0].Name != "build123d" || pkgs[0].Version != "0.9.1" || pkgs[0].Installer != "pip" {
		t.Errorf("unexpected first package: %+v", pkgs[0])
	}
	if pkgs[1].EditableLocation != "/src/ocp_vscode" {
		t.Errorf("EditableLocation = %q", pkgs[1].EditableLocation)
	}
}

func TestListPackages_NonZeroExit(t *testing.T) {
	r := &fakeRunner{outputs: map[string]*Output{
		pipKey: {ExitCode: 1, Stderr: "No module named pip"},
	}}

	_, err := ListPackages(context.Background(), r, "/venv/bin/python")
	var subErr *SubprocessError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected *SubprocessError, got %v", err)
	}
	if subErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", subErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "No module named pip") {
		t.Errorf("error should carry stderr: %v", err)
	}
}

func TestListPackages_StartFailure(t *testing.T) {
	startErr := errors.New("exec: not found")
	r := &fakeRunner{errs: map[string]error{pipKey: startErr}}

	_, err := ListPackages(context.Background(), r, "/venv/bin/python")
	if !errors.Is(err, startErr) {
		t.Fatalf("expected wrapped start error, got %v", err)
	}
}

func TestListPackages_BadJSON(t *testing.T) {
	r := &fakeRunner{outputs: map[string]*Output{pipKey: {Stdout: "not json"}}}
	if _, err := ListPackages(context.Background(), r, "/venv/bin/python"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     *Output
		want    string
		wantErr bool
	}{
		{"stdout", &Output{Stdout: "Python 3.11.4\n"}, "3.11.4", false},
		{"stderr", &Output{Stderr: "Python 2.7.18\n"}, "2.7.18", false},
		{"garbage", &Output{Stdout: "hello"}, "", true},
		{"failure", &Output{ExitCode: 2}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{outputs: map[string]*Output{"py --version": tt.out}}
			got, err := Version(context.Background(), r, "py")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Version() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchVersion(t *testing.T) {
	tests := []struct {
		version     string
		requirement string
		want        bool
	}{
		{"3.11.4", "", true},
		{"3.11.4", "3.10,3.11,3.12", true},
		{"3.11.4", "3.10, 3.12", false},
		{"3.10.2", "3.1", false},
		{"3.12.0", "3.12.0", true},
		{"3.12.1", ">=3.10", true},
		{"3.9.18", ">=3.10", false},
		{"3.9.18", "3.9, >=3.12", true},
		{"3.13.1", "~3.13", true},
	}

	for _, tt := range tests {
		t.Run(tt.version+"/"+tt.requirement, func(t *testing.T) {
			got, err := MatchVersion(tt.version, tt.requirement)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MatchVersion(%q, %q) = %v, want %v", tt.version, tt.requirement, got, tt.want)
			}
		})
	}
}

func TestMatchVersion_BadConstraint(t *testing.T) {
	if _, err := MatchVersion("3.11.0", ">=not-a-version"); err == nil {
		t.Error("expected constraint parse error")
	}
}

func TestCheckVersion(t *testing.T) {
	r := &fakeRunner{outputs: map[string]*Output{"py --version": {Stdout: "Python 3.12.3"}}}

	ok, version, err := CheckVersion(context.Background(), r, "py", "3.10,3.11")
	if err != nil {
		t.Fatalf("CheckVersion: %v", err)
	}
	if ok {
		t.Error("3.12.3 should not satisfy 3.10,3.11")
	}
	if version != "3.12.3" {
		t.Errorf("version = %q", version)
	}
}

func TestResolveWith(t *testing.T) {
	noLook := func(string) (string, error) { return "", exec.ErrNotFound }
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name       string
		configured string
		env        map[string]string
		lookPath   func(string) (string, error)
		goos       string
		want       string
	}{
		{"configured wins", "/opt/py", map[string]string{"VIRTUAL_ENV": "/venv"}, noLook, "linux", "/opt/py"},
		{"virtualenv", "", map[string]string{"VIRTUAL_ENV": "/venv"}, noLook, "linux", filepath.Join("/venv", "bin", "python")},
		{"conda", "", map[string]string{"CONDA_PREFIX": "/conda"}, noLook, "linux", filepath.Join("/conda", "bin", "python")},
		{"windows venv", "", map[string]string{"VIRTUAL_ENV": "/venv"}, noLook, "windows", filepath.Join("/venv", "Scripts", "python.exe")},
		{"windows conda", "", map[string]string{"CONDA_PREFIX": "/conda"}, noLook, "windows", filepath.Join("/conda", "python.exe")},
		{"path lookup", "", nil, func(name string) (string, error) {
			if name == "python3" {
				return "/usr/bin/python3", nil
			}
			return "", exec.ErrNotFound
		}, "linux", "/usr/bin/python3"},
		{"placeholder", "", nil, noLook, "linux", Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveWith(tt.configured, env(tt.env), tt.lookPath, tt.goos)
			if got != tt.want {
				t.Errorf("resolveWith() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	r := &ExecRunner{}
	out, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if strings.TrimSpace(out.Stdout) != "out" || strings.TrimSpace(out.Stderr) != "err" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := &ExecRunner{}
	if _, err := r.Run(context.Background(), "definitely-not-a-real-binary-ocpview"); err == nil {
		t.Error("expected start error for missing binary")
	}
}
