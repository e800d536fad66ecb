package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ocp-tools/ocpview/internal/branding"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const configName = "config.yaml"

// ErrNotSettable is returned by Set for keys that hold tables or are unknown.
var ErrNotSettable = errors.New("key cannot be set from the command line")

// settable lists the scalar keys Set accepts, with a parser for each value.
var settable = map[string]func(string) (interface{}, error){
	KeyPythonPath:     asString,
	KeyRequiredPython: asString,
	KeyViewerVersion:  asString,
	KeyTerminalDelay: func(s string) (interface{}, error) {
		ms, err := strconv.Atoi(s)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("%s must be a non-negative number of milliseconds, got %q", KeyTerminalDelay, s)
		}
		return ms, nil
	},
}

func asString(s string) (interface{}, error) { return s, nil }

// Dir is the per-user state directory, ~/.ocpview unless OCPVIEW_HOME is set.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, branding.HomeDir())
	}
	return branding.HomeDir()
}

// FilePath is the user config file inside Dir.
func FilePath() string {
	return filepath.Join(Dir(), configName)
}

// Load registers defaults on the global viper, then layers the user file
// and OCPVIEW_* environment variables over them. A missing file is fine.
func Load() {
	SetDefaults(viper.GetViper())
	viper.SetConfigFile(FilePath())
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// Get renders the effective value of key. Tables are rendered as YAML.
func Get(key string) string {
	switch val := viper.Get(key).(type) {
	case nil:
		return ""
	case map[string]interface{}, []interface{}:
		out, err := yaml.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(out)
	default:
		return viper.GetString(key)
	}
}

// SettableKeys returns the keys Set accepts, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores a scalar setting in the user file. Only what the file already
// holds is written back, so default tables are never frozen into it.
func Set(key, value string) error {
	parse, ok := settable[key]
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrNotSettable)
	}
	parsed, err := parse(value)
	if err != nil {
		return err
	}

	path := FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	file.Set(key, parsed)
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	viper.Set(key, parsed)
	return nil
}
