package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ocp-tools/ocpview/internal/branding"
	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/extension"
	"github.com/ocp-tools/ocpview/internal/pyenv"
	"github.com/ocp-tools/ocpview/internal/release"
	"github.com/spf13/cobra"
)

var (
	doctorPython  string
	doctorOffline bool
)

func init() {
	doctorCmd.Flags().StringVar(&doctorPython, "python", "", "Python interpreter to check")
	doctorCmd.Flags().BoolVar(&doctorOffline, "offline", false, "Skip the viewer release check")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Python environment, editor and configuration",
	Long:  `Run diagnostic checks on the interpreter, pip, the editor CLI, the configuration file and the viewer state file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		snap := config.Current()

		python := doctorPython
		if python == "" {
			python = snap.PythonPath
		}
		python = pyenv.Resolve(python)

		checkInterpreter(ctx, out, python, snap.RequiredPython)
		checkPip(ctx, out, python)
		checkEditor(ctx, out)
		checkConfigFile(out)
		checkViewerState(ctx, out)
		if !doctorOffline {
			checkViewerRelease(ctx, out, snap.ViewerVersion)
		}
		return nil
	},
}

func checkInterpreter(ctx context.Context, out io.Writer, python, required string) {
	fmt.Fprintln(out, "Python:")
	if python == pyenv.Placeholder {
		fmt.Fprintf(out, "  [MISS] no interpreter found; set python_path or activate an environment\n")
		return
	}
	ok, version, err := pyenv.CheckVersion(ctx, runner, python, required)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", python, err)
	case !ok:
		fmt.Fprintf(out, "  [WARN] %s is Python %s, required: %s\n", python, version, required)
	default:
		fmt.Fprintf(out, "  [ OK ] %s (Python %s)\n", python, version)
	}
}

func checkPip(ctx context.Context, out io.Writer, python string) {
	if python == pyenv.Placeholder {
		return
	}
	pkgs, err := pyenv.ListPackages(ctx, runner, python)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] pip list: %v\n", err)
		return
	}
	fmt.Fprintf(out, "  [ OK ] pip lists %d packages\n", len(pkgs))
}

func checkEditor(ctx context.Context, out io.Writer) {
	fmt.Fprintln(out, "Editor:")
	det := extension.NewDetector(runner, "")
	path, err := det.Path()
	if err != nil {
		fmt.Fprintf(out, "  [MISS] %s not found; the Jupyter extension cannot be detected\n", det.Command())
		return
	}
	fmt.Fprintf(out, "  [ OK ] %s found at %s\n", det.Command(), path)

	present, err := det.Installed(ctx, extension.JupyterID)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [WARN] listing extensions failed: %v\n", err)
	case present:
		fmt.Fprintf(out, "  [ OK ] %s installed\n", extension.JupyterID)
	default:
		fmt.Fprintf(out, "  [MISS] %s not installed\n", extension.JupyterID)
	}
}

func checkConfigFile(out io.Writer) {
	fmt.Fprintln(out, "Configuration:")
	path := config.FilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "  [INFO] no config file at %s, using defaults\n", path)
		return
	}
	result, err := config.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return
	}
	if result.Valid {
		fmt.Fprintf(out, "  [ OK ] %s is valid\n", path)
		return
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  [FAIL] %s: %s (%s)\n", issuePath(issue.Path), issue.Message, issue.Keyword)
	}
}

func checkViewerState(ctx context.Context, out io.Writer) {
	fmt.Fprintln(out, "Viewer:")
	store, err := stateStore()
	if err != nil {
		fmt.Fprintf(out, "  [WARN] %v\n", err)
		return
	}
	ports, err := store.Ports(ctx)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", store.Path(), err)
	case len(ports) == 0:
		fmt.Fprintf(out, "  [INFO] no viewer registered in %s\n", store.Path())
	default:
		fmt.Fprintf(out, "  [ OK ] viewer port(s) %v registered in %s\n", ports, store.Path())
	}
}

func checkViewerRelease(ctx context.Context, out io.Writer, configured string) {
	fmt.Fprintln(out, "Release:")
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	checker := release.New(branding.GitHubRepo(), release.WithHTTPClient(httpClient))
	latest, err := checker.LatestVersion(ctx, config.Dir())
	if err != nil {
		fmt.Fprintf(out, "  [WARN] release check failed: %v\n", err)
		return
	}
	newer, err := release.IsNewer(configured, latest)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [WARN] %v\n", err)
	case newer:
		fmt.Fprintf(out, "  [WARN] viewer_version %s, latest release is %s\n", configured, latest)
	default:
		fmt.Fprintf(out, "  [ OK ] viewer_version %s is current\n", configured)
	}
}
