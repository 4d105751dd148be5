package validators

import (
	"strings"
	"unicode"
)

// Suffixes stripped during stemming, checked longest-first. A suffix is
// only removed when the remaining stem keeps at least three characters.
var stemSuffixes = []string{
	"tion", "sion", "ness", "ment", "less", "able", "ible",
	"ing", "est", "ful",
	"ed", "er", "ly",
	"s",
}

// Stem normalizes a single word to its comparison stem: lowercase,
// accents folded to ASCII, plural endings and common suffixes stripped.
// Stem("dogs") == Stem("dog"), Stem("boxes") == "box",
// Stem("puppies") == "puppy".
func Stem(word string) string {
	w := foldASCII(strings.ToLower(strings.TrimSpace(word)))
	if len(w) <= 3 {
		return w
	}

	// Plural rules run before the generic suffix list so "puppies"
	// becomes "puppy" rather than "puppie" minus "s".
	if strings.HasSuffix(w, "ies") && len(w) > 4 {
		return w[:len(w)-3] + "y"
	}
	for _, sib := range []string{"sses", "xes", "zes", "ches", "shes"} {
		if strings.HasSuffix(w, sib) && len(w) > len(sib)+1 {
			return w[:len(w)-2]
		}
	}

	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(w, suffix) && len(w) > len(suffix)+2 {
			return w[:len(w)-len(suffix)]
		}
	}
	return w
}

// ToStemKey builds a canonical multi-word key: non-alphanumeric runs act
// as separators, each word is stemmed, and the stems are joined with "-".
// "Silver Rings", "silver-ring" and "silver ring" all share one key.
func ToStemKey(phrase string) string {
	folded := foldASCII(strings.ToLower(phrase))
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	stems := make([]string, 0, len(words))
	for _, w := range words {
		if s := Stem(w); s != "" {
			stems = append(stems, s)
		}
	}
	return strings.Join(stems, "-")
}

// EditDistance is the Levenshtein distance between a and b.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// SimilarityVerdict explains why two tags were (or were not) judged
// similar.
type SimilarityVerdict struct {
	Similar    bool    `json:"similar"`
	Reason     string  `json:"reason"`
	Similarity float64 `json:"similarity"`
}

// Similarity reasons.
const (
	ReasonExactMatch = "exact_match"
	ReasonStemMatch  = "stem_match"
	ReasonFuzzyMatch = "fuzzy_match"
	ReasonDistinct   = "distinct"
)

const (
	fuzzyThreshold = 0.8
	fuzzyMinLength = 4
)

// AreSimilar compares two tags after lowercasing and trimming. Exact
// matches and shared stem keys are always similar; otherwise a
// normalized edit-distance ratio above the fuzzy threshold decides,
// provided the longer tag has at least fuzzyMinLength characters.
func AreSimilar(tagA, tagB string) SimilarityVerdict {
	a := strings.ToLower(strings.TrimSpace(tagA))
	b := strings.ToLower(strings.TrimSpace(tagB))

	if a == b {
		return SimilarityVerdict{Similar: true, Reason: ReasonExactMatch, Similarity: 1.0}
	}

	keyA, keyB := ToStemKey(a), ToStemKey(b)
	if keyA != "" && keyA == keyB && len(keyA) > 2 {
		return SimilarityVerdict{Similar: true, Reason: ReasonStemMatch, Similarity: 1.0}
	}

	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return SimilarityVerdict{Similar: true, Reason: ReasonExactMatch, Similarity: 1.0}
	}
	similarity := 1.0 - float64(EditDistance(a, b))/float64(maxLen)
	if similarity > fuzzyThreshold && maxLen >= fuzzyMinLength {
		return SimilarityVerdict{Similar: true, Reason: ReasonFuzzyMatch, Similarity: similarity}
	}
	return SimilarityVerdict{Similar: false, Reason: ReasonDistinct, Similarity: similarity}
}

// DedupeResult reports which tags survived stem-key deduplication.
type DedupeResult struct {
	Unique     []string            `json:"unique"`
	Dropped    []string            `json:"dropped"`
	Duplicates map[string][]string `json:"duplicates,omitempty"`
}

// DedupeByStem keeps the first tag for each stem key, preserving input
// order. Later tags with an already-seen key are dropped and recorded
// under the kept tag. Tags whose stem key is empty are skipped entirely.
func DedupeByStem(tags []string) DedupeResult {
	res := DedupeResult{
		Unique:     make([]string, 0, len(tags)),
		Dropped:    []string{},
		Duplicates: make(map[string][]string),
	}
	keeper := make(map[string]string, len(tags))
	for _, tag := range tags {
		key := ToStemKey(tag)
		if key == "" {
			continue
		}
		if kept, seen := keeper[key]; seen {
			res.Dropped = append(res.Dropped, tag)
			res.Duplicates[kept] = append(res.Duplicates[kept], tag)
			continue
		}
		keeper[key] = tag
		res.Unique = append(res.Unique, tag)
	}
	return res
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// foldASCII maps common accented Latin letters onto their ASCII base so
// "café" and "cafe" stem identically. Unmapped runes pass through.
func foldASCII(s string) string {
	var out []rune
	changed := false
	for i, r := range s {
		if folded, ok := asciiFold[r]; ok {
			if !changed {
				out = make([]rune, 0, len(s))
				out = append(out, []rune(s[:i])...)
				changed = true
			}
			out = append(out, folded...)
			continue
		}
		if changed {
			out = append(out, r)
		}
	}
	if !changed {
		return s
	}
	return string(out)
}

var asciiFold = map[rune][]rune{
	'à': {'a'}, 'á': {'a'}, 'â': {'a'}, 'ä': {'a'}, 'ã': {'a'}, 'å': {'a'},
	'è': {'e'}, 'é': {'e'}, 'ê': {'e'}, 'ë': {'e'},
	'ì': {'i'}, 'í': {'i'}, 'î': {'i'}, 'ï': {'i'},
	'ò': {'o'}, 'ó': {'o'}, 'ô': {'o'}, 'ö': {'o'}, 'õ': {'o'}, 'ø': {'o'},
	'ù': {'u'}, 'ú': {'u'}, 'û': {'u'}, 'ü': {'u'},
	'ý': {'y'}, 'ÿ': {'y'},
	'ç': {'c'}, 'ñ': {'n'}, 'ß': {'s', 's'}, 'æ': {'a', 'e'}, 'œ': {'o', 'e'},
}
