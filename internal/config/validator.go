package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/config.schema.json
var schemaBytes []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	printer = message.NewPrinter(language.English)

	placeholderRe = regexp.MustCompile(`\{[a-z_]+\}`)
	// knownPlaceholders are expanded when install commands are resolved.
	knownPlaceholders = map[string]bool{
		"{python}":             true,
		"{ocp_vscode_version}": true,
		"{unset_conda}":        true,
	}
)

// ValidationResult is the outcome of validating a config file.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one problem, located by a JSON pointer into the file
// (e.g. "/install_commands/build123d").
type ValidationIssue struct {
	Path    string
	Message string
	Keyword string
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		if schema, err = c.Compile("config.schema.json"); err != nil {
			schemaErr = fmt.Errorf("compiling schema: %w", err)
		}
	})
	return schema, schemaErr
}

// Validate checks YAML config bytes against the schema and then for
// problems the schema cannot express: unknown placeholders in install
// commands and example downloads for libraries that cannot be installed.
// The error return is for unreadable input; problems are reported as issues.
func Validate(data []byte) (*ValidationResult, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		return &ValidationResult{Valid: true}, nil
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var issues []ValidationIssue
	if err := sch.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validating: %w", err)
		}
		issues = schemaIssues(ve)
	}
	issues = append(issues, placeholderIssues(doc)...)
	issues = append(issues, orphanDownloadIssues(doc)...)

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// ValidateFile reads path and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Validate(data)
}

// schemaIssues flattens the error tree to its leaves, which carry the
// property-level detail, dropping duplicates.
func schemaIssues(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]bool)

	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}

		issue := ValidationIssue{}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		if ve.ErrorKind != nil {
			if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
				issue.Keyword = kw[len(kw)-1]
			}
			issue.Message = ve.ErrorKind.LocalizedString(printer)
		}

		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if issue.Keyword == "" || seen[key] {
			continue
		}
		seen[key] = true
		issues = append(issues, issue)
	}

	if len(issues) == 0 {
		issues = append(issues, ValidationIssue{Message: root.Error()})
	}
	return issues
}

func placeholderIssues(doc map[string]interface{}) []ValidationIssue {
	commands, _ := doc[KeyInstallCommands].(map[string]interface{})

	var issues []ValidationIssue
	for lib, raw := range commands {
		lines, ok := StringList(raw)
		if !ok {
			continue // reported by the schema
		}
		for i, line := range lines {
			for _, ph := range placeholderRe.FindAllString(line, -1) {
				if knownPlaceholders[ph] {
					continue
				}
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("/%s/%s/%d", KeyInstallCommands, lib, i),
					Message: fmt.Sprintf("unknown placeholder %s", ph),
					Keyword: "placeholder",
				})
			}
		}
	}
	return issues
}

// orphanDownloadIssues reports example downloads for libraries without
// install commands. A file without install_commands keeps the defaults.
func orphanDownloadIssues(doc map[string]interface{}) []ValidationIssue {
	downloads, _ := doc[KeyExampleDownloads].(map[string]interface{})
	if len(downloads) == 0 {
		return nil
	}

	commands, ok := doc[KeyInstallCommands].(map[string]interface{})
	if !ok {
		v := viper.New()
		SetDefaults(v)
		commands = v.GetStringMap(KeyInstallCommands)
	}

	var issues []ValidationIssue
	for lib := range downloads {
		if _, ok := commands[lib]; ok {
			continue
		}
		issues = append(issues, ValidationIssue{
			Path:    fmt.Sprintf("/%s/%s", KeyExampleDownloads, lib),
			Message: fmt.Sprintf("%s has no install_commands entry and is never listed", lib),
			Keyword: "orphan",
		})
	}
	return issues
}
