// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a rebuild is all it takes to rename the tool.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	ViewerLibrary   string `yaml:"viewer_library"`
	ViewerStateFile string `yaml:"viewer_state_file"`
	GitHubRepo      string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:         "ocpview",
			DisplayName:     "OCP CAD Viewer",
			Description:     "Library manager and status view for the OCP CAD Viewer",
			HomeDir:         ".ocpview",
			EnvPrefix:       "OCPVIEW",
			ViewerLibrary:   "ocp_vscode",
			ViewerStateFile: ".ocpvscode",
			GitHubRepo:      "bernhard-42/vscode-ocp-cad-viewer",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ocpview").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable viewer name (e.g., "OCP CAD Viewer").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ocpview").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "OCPVIEW").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ViewerLibrary returns the Python package name of the viewer itself.
func ViewerLibrary() string { load(); return defaults.ViewerLibrary }

// ViewerStateFile returns the file name (under $HOME) where running viewers
// register their ports.
func ViewerStateFile() string { load(); return defaults.ViewerStateFile }

// GitHubRepo returns the "owner/repo" string of the viewer project.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "OCPVIEW_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
