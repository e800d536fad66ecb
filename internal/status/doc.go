// Package status tracks whether the OCP CAD Viewer is installed and running,
// on which port it listens, which supporting libraries are present and
// whether the companion Jupyter extension is installed, and exposes that
// state as a small tree for display.
package status
