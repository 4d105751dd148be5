package listings

import (
	"strings"
	"testing"
)

func TestCleanDumpKeepsSectionLines(t *testing.T) {
	raw := "Title: Silver Ring\nEdit listing\nDescription: A lovely ring\nRandom chrome line\nTags: ring, silver"
	cleaned, skipped := CleanDump(raw)
	if skipped {
		t.Fatalf("expected cleaning to apply")
	}
	if !strings.Contains(cleaned, "Title: Silver Ring") {
		t.Fatalf("title line dropped: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Tags: ring, silver") {
		t.Fatalf("tags line dropped: %q", cleaned)
	}
	if strings.Contains(cleaned, "Random chrome line") {
		t.Fatalf("chrome line kept: %q", cleaned)
	}
}

func TestCleanDumpDropsExcludedLines(t *testing.T) {
	raw := "Title: Silver Ring\nTitle Edit this listing\nDescription upload photos"
	cleaned, _ := CleanDump(raw)
	if cleaned != "Title: Silver Ring" {
		t.Fatalf("cleaned = %q", cleaned)
	}
}

func TestCleanDumpFallsBackWhenNothingRecognized(t *testing.T) {
	raw := "  just some text\nwith no labels  "
	cleaned, skipped := CleanDump(raw)
	if !skipped {
		t.Fatalf("expected fallback to raw input")
	}
	if cleaned != "just some text\nwith no labels" {
		t.Fatalf("cleaned = %q", cleaned)
	}
}

func TestCleanDumpEmptyInput(t *testing.T) {
	cleaned, skipped := CleanDump("   ")
	if cleaned != "" || skipped {
		t.Fatalf("cleaned = %q, skipped = %v", cleaned, skipped)
	}
}
