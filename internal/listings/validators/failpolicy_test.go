package validators

import "testing"

func TestGetFailActionTitleIssues(t *testing.T) {
	hard := []string{IssueMissingTitle, IssueTooShort, IssueTooLong, IssuePatternMismatch}
	for _, issue := range hard {
		w := Warning{Type: "title_template", Validator: ValidatorTitleTemplate, Issue: issue}
		if got := GetFailAction(w); got != ActionHard {
			t.Fatalf("GetFailAction(%s) = %q, want HARD", issue, got)
		}
	}

	soft := []string{IssueSuboptimalLength, IssueMissingGiftHook, IssueMissingAudience, IssueMissingElements}
	for _, issue := range soft {
		w := Warning{Type: "title_template", Validator: ValidatorTitleTemplate, Issue: issue}
		if got := GetFailAction(w); got != ActionSoft {
			t.Fatalf("GetFailAction(%s) = %q, want SOFT", issue, got)
		}
	}
}

func TestGetFailActionValidatorWildcards(t *testing.T) {
	w := Warning{Type: "duplicate_stem", Validator: ValidatorDuplicateStem, Severity: SeverityHigh, Reason: ReasonExactMatch}
	if got := GetFailAction(w); got != ActionSoft {
		t.Fatalf("duplicate stem = %q, want SOFT even at high severity", got)
	}

	w = Warning{Type: "layer_count", Validator: ValidatorLayerCount, Severity: SeverityHigh}
	if got := GetFailAction(w); got != ActionSoft {
		t.Fatalf("layer count = %q, want SOFT", got)
	}
}

func TestGetFailActionValidationErrorIsHard(t *testing.T) {
	w := Warning{Type: "validation_error", Validator: ValidatorDuplicateStem, Severity: SeverityMedium}
	if got := GetFailAction(w); got != ActionHard {
		t.Fatalf("validation_error = %q, want HARD", got)
	}
}

func TestGetFailActionUnknownDefaultsSoft(t *testing.T) {
	w := Warning{Type: "consistency", Validator: ValidatorConsistency, Severity: SeverityMedium}
	if got := GetFailAction(w); got != ActionSoft {
		t.Fatalf("unknown warning = %q, want SOFT", got)
	}
}

func TestFirstHardWarningOrder(t *testing.T) {
	warnings := []Warning{
		{Type: "duplicate_stem", Validator: ValidatorDuplicateStem, Reason: ReasonExactMatch},
		{Type: "title_template", Validator: ValidatorTitleTemplate, Issue: IssueTooShort, Field: "title"},
		{Type: "validation_error"},
	}
	w, ok := FirstHardWarning(warnings)
	if !ok {
		t.Fatalf("expected a hard warning")
	}
	if w.Issue != IssueTooShort {
		t.Fatalf("first hard warning = %+v, want too_short", w)
	}

	if _, ok := FirstHardWarning(warnings[:1]); ok {
		t.Fatalf("duplicate stem alone must not hard-fail")
	}
}
