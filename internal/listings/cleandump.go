package listings

import "strings"

// Section labels worth keeping from a raw storefront dump. Lines that do
// not mention one of these are considered UI chrome and dropped.
var keepSections = []string{
	"title",
	"description",
	"features",
	"tags",
	"materials",
	"category",
	"personalization",
	"price",
	"quantity",
	"sku",
	"variations",
	"details",
	"shipping and processing",
	"available sizes",
	"care instructions",
}

// UI noise that shows up inside otherwise relevant lines.
var dumpExclusions = []string{
	"edit",
	"upload",
	"remove",
	"view on etsy",
	"opens a new tab",
	"change",
	"add up to",
	"show all attributes",
	"type to search",
	"feature this listing",
	"automatic",
	"manual",
}

// CleanDump strips UI chrome from a raw listing dump, keeping only lines
// that mention a known section label. When nothing is recognized the
// original input is returned so generation can still proceed; callers
// should record that cleaning was skipped.
func CleanDump(raw string) (cleaned string, skipped bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}

	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		if !containsAnySection(lower) {
			continue
		}
		if containsExclusion(lower) {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.TrimSpace(strings.Join(kept, "\n"))
	if out == "" {
		return strings.TrimSpace(raw), true
	}
	return out, false
}

func containsAnySection(lower string) bool {
	for _, section := range keepSections {
		if strings.Contains(lower, section) {
			return true
		}
	}
	return false
}

func containsExclusion(lower string) bool {
	for _, word := range dumpExclusions {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
