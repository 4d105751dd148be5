package validators

import "testing"

func TestRunAllCleanOutput(t *testing.T) {
	output := Output{
		Title:    "Silver Ring Gift for Mom Birthday Anniversary",
		HasTitle: true,
		Tags:     append(balancedTags(), "gift for her"),
		HasTags:  true,
	}
	ctx := Context{GiftMode: true, Audience: []string{"mom"}}

	res := RunAll(output, ctx)
	if !res.IsValid {
		t.Fatalf("expected valid result, warnings: %+v", res.Warnings)
	}
	if res.IsSoftFail {
		t.Fatalf("clean output must not soft-fail: %+v", res.Warnings)
	}
	if res.Metrics.TotalWarnings != 0 {
		t.Fatalf("totalWarnings = %d, want 0", res.Metrics.TotalWarnings)
	}
	if res.Metrics.ProcessingTimeMs < 1 {
		t.Fatalf("processingTimeMs = %f, want >= 1", res.Metrics.ProcessingTimeMs)
	}
	for _, name := range []string{"duplicateStems", "layerCount", "titleTemplate", "consistency"} {
		summary, ok := res.ValidationResults[name]
		if !ok {
			t.Fatalf("missing summary for %s", name)
		}
		if !summary.Passed {
			t.Fatalf("summary %s not passed: %+v", name, summary)
		}
	}
	if res.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestRunAllMissingTags(t *testing.T) {
	output := Output{
		Title:    "Silver Ring Gift for Mom Birthday Anniversary",
		HasTitle: true,
	}
	res := RunAll(output, Context{})
	var found *Warning
	for i := range res.Warnings {
		if res.Warnings[i].Type == "validation_error" {
			found = &res.Warnings[i]
		}
	}
	if found == nil {
		t.Fatalf("no validation_error warning in %+v", res.Warnings)
	}
	if found.Severity != SeverityMedium {
		t.Fatalf("severity = %q, want medium", found.Severity)
	}
	if summary := res.ValidationResults["duplicateStems"]; summary.Passed {
		t.Fatalf("duplicateStems summary should not pass: %+v", summary)
	}
	if summary := res.ValidationResults["layerCount"]; summary.Passed {
		t.Fatalf("layerCount summary should not pass: %+v", summary)
	}
}

func TestRunAllMissingTitleIsHard(t *testing.T) {
	output := Output{Tags: balancedTags(), HasTags: true}
	res := RunAll(output, Context{})
	if res.IsValid {
		t.Fatalf("missing title must invalidate")
	}
	if res.IsSoftFail {
		t.Fatalf("high severity present, must not be a soft fail")
	}
	if res.Metrics.HighSeverityWarnings == 0 {
		t.Fatalf("expected high severity warning, metrics: %+v", res.Metrics)
	}
}

func TestRunAllSoftFail(t *testing.T) {
	// Duplicate stems are medium severity at worst, so the run soft-fails.
	tags := []string{
		"ring", "necklace", "silver ring", "gold", "vintage",
		"birthday", "anniversary", "wedding", "christmas",
		"women", "mom",
		"blue", "silver rings",
	}
	output := Output{
		Title:    "Silver Ring Gift for Mom Birthday Anniversary",
		HasTitle: true,
		Tags:     tags,
		HasTags:  true,
	}
	res := RunAll(output, Context{Audience: []string{"mom"}})
	if res.Metrics.TotalWarnings == 0 {
		t.Fatalf("expected warnings from duplicate stems")
	}
	if !res.IsValid {
		t.Fatalf("medium warnings must not invalidate: %+v", res.Warnings)
	}
	if !res.IsSoftFail {
		t.Fatalf("expected soft fail, metrics: %+v", res.Metrics)
	}
}

func TestRunAllSeverityTally(t *testing.T) {
	res := RunAll(Output{}, Context{})
	m := res.Metrics
	if m.TotalWarnings != m.HighSeverityWarnings+m.MediumSeverityWarnings+m.LowSeverityWarnings {
		t.Fatalf("severity tally mismatch: %+v", m)
	}
}
