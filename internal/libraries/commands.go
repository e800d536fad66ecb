package libraries

import (
	"fmt"
	"strings"

	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/platform"
)

// Placeholders understood in install command templates.
const (
	versionPlaceholder    = "{ocp_vscode_version}"
	pythonPlaceholder     = "{python}"
	unsetCondaPlaceholder = "{unset_conda}"
)

// InstallCommands returns the install commands of library with placeholders
// expanded. A non-nil override replaces the configured templates. When the
// configured value is not a list of strings the user is notified and an empty
// list is returned together with the reported *ConfigShapeError.
func (t *Tracker) InstallCommands(library string, override []string) ([]string, error) {
	templates := override
	if templates == nil {
		raw, ok := t.snap.InstallCommands[library]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLibrary, library)
		}
		list, ok := config.StringList(raw)
		if !ok {
			err := shapeError(config.KeyInstallCommands, library, raw)
			return []string{}, t.report(fmt.Sprintf("Invalid configuration: %v", err), err)
		}
		templates = list
	}

	commands := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		cmd, err := t.expand(tmpl)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func (t *Tracker) expand(tmpl string) (string, error) {
	cmd := strings.ReplaceAll(tmpl, versionPlaceholder, t.snap.ViewerVersion)
	cmd = strings.ReplaceAll(cmd, pythonPlaceholder, `"`+t.python+`"`)
	if !strings.Contains(cmd, unsetCondaPlaceholder) {
		return cmd, nil
	}

	cmd = strings.ReplaceAll(cmd, unsetCondaPlaceholder, "")
	out, err := platform.UnsetEnv(t.goos, "CONDA_PREFIX", cmd, t.tmpDir)
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", unsetCondaPlaceholder, err)
	}
	return out, nil
}
