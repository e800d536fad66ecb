// Package config manages user-level settings stored at ~/.ocpview/config.yaml.
// It owns the library tables (install commands, import snippets, example
// downloads), the terminal startup delay and the interpreter settings, and
// freezes them into a Snapshot once per refresh cycle. ValidateFile checks a
// config file against the embedded JSON schema.
package config
