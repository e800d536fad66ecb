// Package ui renders trackers and messages for the terminal.
package ui
