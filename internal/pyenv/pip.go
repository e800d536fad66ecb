package pyenv

import (
	"context"
	"encoding/json"
	"fmt"
)

// Package is one entry of `pip list -v --format json`.
type Package struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Location         string `json:"location"`
	Installer        string `json:"installer"`
	EditableLocation string `json:"editable_project_location,omitempty"`
}

// ListPackages runs `<python> -m pip list -v --format json` and parses the result.
func ListPackages(ctx context.Context, r Runner, python string) ([]Package, error) {
	out, err := run(ctx, r, python, "-m", "pip", "list", "-v", "--format", "json")
	if err != nil {
		return nil, err
	}

	var pkgs []Package
	if err := json.Unmarshal([]byte(out.Stdout), &pkgs); err != nil {
		return nil, fmt.Errorf("parsing pip list output: %w", err)
	}
	return pkgs, nil
}
