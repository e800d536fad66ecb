package config

import (
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// ExampleDownload describes where the examples of a library can be fetched.
type ExampleDownload struct {
	URL         string `mapstructure:"zip" yaml:"zip"`
	ExamplePath string `mapstructure:"example_path" yaml:"example_path"`
}

// Snapshot is the configuration as seen by one refresh cycle. It is read once
// and never consulted mid-operation.
type Snapshot struct {
	PythonPath     string
	RequiredPython string
	ViewerVersion  string
	TerminalDelay  time.Duration

	// The library tables keep the raw configured values; the shape of an
	// entry is only checked when that library's entry is used, so one bad
	// entry does not affect the others.
	InstallCommands  map[string]interface{}
	CodeSnippets     map[string]interface{}
	ExampleDownloads map[string]interface{}
}

// Current builds a Snapshot from the global Viper instance.
func Current() *Snapshot {
	return SnapshotFrom(viper.GetViper())
}

// SnapshotFrom builds a Snapshot from the given Viper instance. Malformed
// library entries are kept as they are; see Snippet and Download.
func SnapshotFrom(v *viper.Viper) *Snapshot {
	return &Snapshot{
		PythonPath:       v.GetString(KeyPythonPath),
		RequiredPython:   v.GetString(KeyRequiredPython),
		ViewerVersion:    v.GetString(KeyViewerVersion),
		TerminalDelay:    time.Duration(v.GetInt(KeyTerminalDelay)) * time.Millisecond,
		InstallCommands:  v.GetStringMap(KeyInstallCommands),
		CodeSnippets:     v.GetStringMap(KeyCodeSnippets),
		ExampleDownloads: v.GetStringMap(KeyExampleDownloads),
	}
}

// Snippet returns the import snippet of library. ok is false when none is
// configured; valid is false when the entry is not a list of strings.
func (s *Snapshot) Snippet(library string) (lines []string, ok, valid bool) {
	raw, ok := s.CodeSnippets[library]
	if !ok {
		return nil, false, false
	}
	lines, valid = StringList(raw)
	return lines, true, valid
}

// Download returns the example download of library. ok is false when none
// is configured; valid is false when the entry is not a table with a zip URL
// and nothing but zip and example_path keys.
func (s *Snapshot) Download(library string) (dl ExampleDownload, ok, valid bool) {
	raw, ok := s.ExampleDownloads[library]
	if !ok {
		return ExampleDownload{}, false, false
	}
	if typed, isTyped := raw.(ExampleDownload); isTyped {
		return typed, true, typed.URL != ""
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &dl,
	})
	if err != nil {
		return ExampleDownload{}, true, false
	}
	if raw == nil || dec.Decode(raw) != nil || dl.URL == "" {
		return ExampleDownload{}, true, false
	}
	return dl, true, true
}

// Libraries returns the configured library names in sorted order.
func (s *Snapshot) Libraries() []string {
	names := make([]string, 0, len(s.InstallCommands))
	for name := range s.InstallCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StringList reports whether raw is a list made only of strings and returns
// it as a []string.
func StringList(raw interface{}) ([]string, bool) {
	switch val := raw.(type) {
	case []string:
		return append([]string(nil), val...), true
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
