package prompts

import (
	"strings"
	"testing"
)

func TestLoadParsesAllPrompts(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, stage := range []string{StageClassifier, StageTitle, StageTags, StageDescription} {
		p, err := lib.Get(stage)
		if err != nil {
			t.Fatalf("Get(%s): %v", stage, err)
		}
		if !strings.HasPrefix(p.Version, "v") {
			t.Fatalf("stage %s version = %q, want vX.Y.Z", stage, p.Version)
		}
		if p.Text == "" {
			t.Fatalf("stage %s has empty prompt", stage)
		}
	}
}

func TestLoadParsesRules(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, field := range []string{"title", "tags", "description"} {
		if lib.Rules(field) == "" {
			t.Fatalf("no rules for %s", field)
		}
	}
	if lib.Rules("nonexistent") != "" {
		t.Fatalf("expected empty rules for unknown field")
	}
}

func TestGetUnknownStage(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := lib.Get("summary"); err == nil {
		t.Fatalf("expected error for unknown stage")
	}
}

func TestExtractVersion(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"plain", "::VERSION:: v1.2.3\nbody", "v1.2.3", false},
		{"after comments", "# comment\n\n::VERSION:: v3.3.2\nbody", "v3.3.2", false},
		{"missing", "just a prompt body", "", true},
		{"not first", "body first\n::VERSION:: v1.0.0", "", true},
		{"empty", "", "", true},
	}
	for _, tc := range cases {
		got, err := extractVersion(tc.content)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: version = %q, want %q", tc.name, got, tc.want)
		}
	}
}
