package config

import "github.com/spf13/viper"

// Config keys.
const (
	KeyPythonPath       = "python_path"
	KeyRequiredPython   = "required_python"
	KeyViewerVersion    = "viewer_version"
	KeyTerminalDelay    = "terminal_delay"
	KeyInstallCommands  = "install_commands"
	KeyCodeSnippets     = "code_snippets"
	KeyExampleDownloads = "example_downloads"
)

// Default values.
const (
	DefaultTerminalDelayMS = 1000
	DefaultRequiredPython  = "3.10,3.11,3.12,3.13"
	DefaultViewerVersion   = "2.8.0"
)

const pipInstall = "{unset_conda} {python} -m pip install "

// SetDefaults registers the default library tables and settings on v.
// A table present in the config file replaces the default table as a whole.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTerminalDelay, DefaultTerminalDelayMS)
	v.SetDefault(KeyRequiredPython, DefaultRequiredPython)
	v.SetDefault(KeyViewerVersion, DefaultViewerVersion)

	v.SetDefault(KeyInstallCommands, map[string]interface{}{
		"ocp_vscode": []interface{}{pipInstall + "ocp_vscode=={ocp_vscode_version}"},
		"build123d":  []interface{}{pipInstall + "build123d"},
		"cadquery":   []interface{}{pipInstall + "cadquery"},
		"ipykernel":  []interface{}{pipInstall + "ipykernel"},
	})

	v.SetDefault(KeyCodeSnippets, map[string]interface{}{
		"ocp_vscode": []interface{}{
			"from ocp_vscode import show, show_object, reset_show, set_port, set_defaults, get_defaults",
		},
		"build123d": []interface{}{"from build123d import *"},
		"cadquery":  []interface{}{"import cadquery as cq"},
	})

	v.SetDefault(KeyExampleDownloads, map[string]interface{}{
		"build123d": map[string]interface{}{
			"zip":          "https://github.com/gumyr/build123d/archive/refs/heads/dev.zip",
			"example_path": "build123d-dev/examples",
		},
		"cadquery": map[string]interface{}{
			"zip":          "https://github.com/CadQuery/cadquery/archive/refs/heads/master.zip",
			"example_path": "cadquery-master/examples",
		},
	})
}
