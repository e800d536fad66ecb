// Package libraries tracks which of the configured CAD libraries are installed
// in the active Python environment and drives their installation.
//
// A Tracker is refreshed with a configuration snapshot; it lists installed
// packages through pip, keeps the configured ones, forwards their names to a
// status sink and notifies observers. Install runs the configured commands in
// a terminal and refreshes again once the terminal exits.
package libraries
