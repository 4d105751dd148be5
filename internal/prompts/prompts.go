// Package prompts loads the embedded prompt files and per-field
// generation rules. Prompt files carry a strict version header: the
// first non-comment line must be "::VERSION:: vX.Y.Z" or loading fails,
// which surfaces as a configuration error to the caller.
package prompts

import (
	"embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed files/*.txt files/rules.yaml
var promptFS embed.FS

// Prompt stage names mapped to embedded files.
const (
	StageClassifier  = "classifier"
	StageTitle       = "title"
	StageTags        = "tags"
	StageDescription = "description"
)

var promptFiles = map[string]string{
	StageClassifier:  "files/classifier_prompt.txt",
	StageTitle:       "files/title_prompt.txt",
	StageTags:        "files/tag_prompt.txt",
	StageDescription: "files/description_prompt.txt",
}

var versionRe = regexp.MustCompile(`::VERSION::\s+(v[\d.]+)`)

// Prompt is a loaded prompt body with its declared version.
type Prompt struct {
	Text    string
	Version string
}

// Library serves prompts and rules, parsed once at construction.
type Library struct {
	prompts map[string]Prompt
	rules   map[string]string
}

// Load parses every embedded prompt and the rules file. Any malformed
// version header fails the whole load.
func Load() (*Library, error) {
	lib := &Library{
		prompts: make(map[string]Prompt, len(promptFiles)),
		rules:   make(map[string]string),
	}

	for stage, file := range promptFiles {
		raw, err := promptFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("prompt file not found: %s", file)
		}
		version, err := extractVersion(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		lib.prompts[stage] = Prompt{Text: strings.TrimSpace(string(raw)), Version: version}
	}

	rulesRaw, err := promptFS.ReadFile("files/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("rules file not found: %w", err)
	}
	if err := yaml.Unmarshal(rulesRaw, &lib.rules); err != nil {
		return nil, fmt.Errorf("rules parse: %w", err)
	}
	return lib, nil
}

// Get returns the prompt for a stage.
func (l *Library) Get(stage string) (Prompt, error) {
	p, ok := l.prompts[stage]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt stage: %s", stage)
	}
	return p, nil
}

// Rules returns the generation rules for a field, empty when none are
// defined.
func (l *Library) Rules(field string) string {
	return l.rules[field]
}

// extractVersion finds the version header on the first non-comment,
// non-empty line. Anything else there is a hard error.
func extractVersion(content string) (string, error) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := versionRe.FindStringSubmatch(trimmed); m != nil {
			return m[1], nil
		}
		return "", fmt.Errorf("prompt version header (::VERSION:: vX.X.X) missing or malformed")
	}
	return "", fmt.Errorf("prompt version header (::VERSION:: vX.X.X) missing or malformed")
}
