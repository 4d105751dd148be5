package listings

import (
	"regexp"
	"strings"
)

var (
	newlineRe      = regexp.MustCompile(`\r?\n`)
	duplicateCmdRe = regexp.MustCompile(`(?i)^duplicate\s+tags:\s*(.+)$`)
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// PreflightCheck fails fast on inputs that can never produce a valid
// listing, before any model call is made. It returns a user-facing error
// message, or "" when the input may proceed.
func PreflightCheck(effectiveText string) string {
	if !newlineRe.MatchString(effectiveText) && len(effectiveText) > maxTitleChars {
		return "Title generation failed: input title exceeds 140 characters"
	}

	if m := duplicateCmdRe.FindStringSubmatch(strings.TrimSpace(effectiveText)); m != nil {
		seen := make(map[string]bool)
		for _, item := range strings.Split(m[1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key := crudeStem(item)
			if seen[key] {
				return "Tags generation failed: duplicate stems detected"
			}
			seen[key] = true
		}
	}

	return ""
}

// crudeStem collapses a tag to a rough singular key. Deliberately blunt;
// the semantic validators do the real stemming later.
func crudeStem(s string) string {
	s = nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
	return strings.TrimSuffix(s, "s")
}
