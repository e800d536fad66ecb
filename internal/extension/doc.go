// Package extension detects editor extensions through the editor's command
// line interface.
package extension
