package listings

import (
	"fmt"
	"regexp"
	"strings"
)

// StructuralResult is the outcome of checking one generated field against
// the marketplace format rules. Notes carry machine-readable retry reasons
// that get appended to the next attempt's context.
type StructuralResult struct {
	Valid  bool
	Notes  []string
	Reason string
}

const (
	maxTitleChars    = 140
	expectedTagCount = 13
	minimalDescChars = 50
)

var (
	nonASCIIRe = regexp.MustCompile(`[^\x00-\x7F]`)
	allCapsRe  = regexp.MustCompile(`[A-Z]{2,}`)
	tagCharsRe = regexp.MustCompile(`^[a-z0-9\- ']{1,20}$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	emojiRe    = regexp.MustCompile(`[\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1F9FF}\x{1FA70}-\x{1FAFF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}\x{2B50}\x{2B55}\x{200D}]`)

	titleForbiddenWords = []string{"best ever", "cheap", "free", "guaranteed"}

	requiredDescSections = []string{"Overview", "Features", "Shipping and Processing", "Call To Action"}
	minimalDescSections  = []string{"Overview", "Call To Action"}

	descSectionRes = compileSectionRes(requiredDescSections)
)

func compileSectionRes(labels []string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(labels))
	for _, label := range labels {
		name := regexp.QuoteMeta(label)
		name = strings.ReplaceAll(name, " ", `\s+`)
		out[label] = regexp.MustCompile(`(?i)(^|\r?\n)\s*:::\s*` + name + `\s*:::\s*(\r?\n|$)`)
	}
	return out
}

func hasDescSection(desc, label string) bool {
	return descSectionRes[label].MatchString(desc)
}

// ValidateTitleStructure enforces the storefront title rules: length,
// ASCII-only, no forbidden marketing words, no shouting.
func ValidateTitleStructure(title string) StructuralResult {
	var notes []string

	if len(title) > maxTitleChars {
		notes = append(notes, "Title exceeds 140 characters. retry_reason:title_too_long")
	}
	if nonASCIIRe.MatchString(title) {
		notes = append(notes, "Title contains non-ASCII characters. retry_reason:title_non_ascii")
	}
	lower := strings.ToLower(title)
	for _, word := range titleForbiddenWords {
		if strings.Contains(lower, word) {
			notes = append(notes, fmt.Sprintf("Title contains forbidden word: '%s'. retry_reason:title_forbidden_word", word))
		}
	}
	if len(allCapsRe.FindAllString(title, -1)) > 1 {
		notes = append(notes, "Title contains excessive ALL CAPS. retry_reason:title_excessive_caps")
	}
	if emojiRe.MatchString(title) {
		notes = append(notes, "Title contains emoji or forbidden symbol. retry_reason:title_emoji")
	}

	return toResult(notes)
}

// ValidateTagsStructure checks the 13-tag set for charset, length,
// duplicates and lowercase. Sets with a different count are left to the
// semantic validators, which handle partial output with warnings instead.
func ValidateTagsStructure(tags []string) StructuralResult {
	var notes []string

	if len(tags) == expectedTagCount {
		seen := make(map[string]bool, len(tags))
		for _, t := range tags {
			if !tagCharsRe.MatchString(t) {
				notes = append(notes, "tag_invalid_chars_or_len")
			}
			if seen[t] {
				notes = append(notes, "tag_duplicate")
			}
			seen[t] = true
			if upperRe.MatchString(t) {
				notes = append(notes, "tag_not_lowercase")
			}
		}
	}

	return toResult(notes)
}

// ValidateDescriptionStructure enforces emoji bans and the section-block
// format. Short descriptions (under 50 chars) pass in minimal mode when
// they carry at least the Overview and Call To Action blocks.
func ValidateDescriptionStructure(desc string) StructuralResult {
	var notes []string

	if emojiRe.MatchString(desc) {
		notes = append(notes, "Description contains emojis or problematic symbols. retry_reason:desc_emoji_symbols")
	}

	var missingBlocks []string
	if strings.TrimSpace(desc) != "" {
		for _, label := range requiredDescSections {
			if !hasDescSection(desc, label) {
				missingBlocks = append(missingBlocks,
					fmt.Sprintf("Description missing required block: ::: %s ::: retry_reason:desc_missing_block", label))
			}
		}
	}

	if len(desc) < minimalDescChars {
		minimalOK := true
		for _, label := range minimalDescSections {
			if !hasDescSection(desc, label) {
				minimalOK = false
				break
			}
		}
		if minimalOK {
			missingBlocks = nil
		}
	}
	notes = append(notes, missingBlocks...)

	return toResult(notes)
}

// ValidateFieldStructure dispatches to the right structural check for the
// given field.
func ValidateFieldStructure(field string, fields Fields) StructuralResult {
	switch field {
	case "title":
		return ValidateTitleStructure(fields.Title)
	case "tags":
		return ValidateTagsStructure(fields.Tags)
	case "description":
		return ValidateDescriptionStructure(fields.Description)
	}
	return StructuralResult{Valid: true}
}

func toResult(notes []string) StructuralResult {
	res := StructuralResult{Valid: len(notes) == 0, Notes: notes}
	if !res.Valid {
		res.Reason = notes[0]
	}
	return res
}
