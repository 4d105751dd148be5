package validators

import "testing"

func TestStemNormalizesPluralsAndSuffixes(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		{"dogs", "dog"},
		{"dog", "dog"},
		{"boxes", "box"},
		{"puppies", "puppy"},
		{"dishes", "dish"},
		{"glasses", "glass"},
		{"rings", "ring"},
		{"ring", "ring"},
		{"Necklaces", "necklace"},
		{"  GIFTS  ", "gift"},
		{"café", "cafe"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Stem(tc.word); got != tc.want {
			t.Fatalf("Stem(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}

func TestStemIsIdempotent(t *testing.T) {
	for _, word := range []string{"dogs", "boxes", "puppies", "silver", "personalized"} {
		once := Stem(word)
		if twice := Stem(once); twice != once {
			t.Fatalf("Stem not idempotent for %q: %q then %q", word, once, twice)
		}
	}
}

func TestToStemKeyTreatsSeparatorsAlike(t *testing.T) {
	variants := []string{"silver ring", "Silver Rings", "silver-ring", "silver_ring", "  silver   ring "}
	want := ToStemKey(variants[0])
	if want == "" {
		t.Fatalf("expected non-empty key for %q", variants[0])
	}
	for _, v := range variants[1:] {
		if got := ToStemKey(v); got != want {
			t.Fatalf("ToStemKey(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestToStemKeyEmptyForPunctuationOnly(t *testing.T) {
	for _, phrase := range []string{"", "   ", "--- !!"} {
		if got := ToStemKey(phrase); got != "" {
			t.Fatalf("ToStemKey(%q) = %q, want empty", phrase, got)
		}
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"ring", "ring", 0},
		{"ring", "rings", 1},
	}
	for _, tc := range cases {
		if got := EditDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("EditDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAreSimilarExactMatch(t *testing.T) {
	v := AreSimilar("Silver Ring", "silver ring")
	if !v.Similar || v.Reason != ReasonExactMatch || v.Similarity != 1.0 {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestAreSimilarStemMatch(t *testing.T) {
	v := AreSimilar("silver ring", "silver rings")
	if !v.Similar {
		t.Fatalf("expected similar, got %+v", v)
	}
	if v.Reason != ReasonStemMatch {
		t.Fatalf("reason = %q, want %q", v.Reason, ReasonStemMatch)
	}
}

func TestAreSimilarFuzzyMatch(t *testing.T) {
	v := AreSimilar("jewellery", "jewelery")
	if !v.Similar || v.Reason != ReasonFuzzyMatch {
		t.Fatalf("unexpected verdict: %+v", v)
	}
	if v.Similarity <= fuzzyThreshold {
		t.Fatalf("similarity = %f, want > %f", v.Similarity, fuzzyThreshold)
	}
}

func TestAreSimilarDistinct(t *testing.T) {
	v := AreSimilar("ring", "necklace")
	if v.Similar {
		t.Fatalf("expected distinct, got %+v", v)
	}
	if v.Reason != ReasonDistinct {
		t.Fatalf("reason = %q, want %q", v.Reason, ReasonDistinct)
	}
}

func TestAreSimilarShortTagsNeverFuzzy(t *testing.T) {
	// "cat"/"car" are one edit apart but below the fuzzy length floor.
	if v := AreSimilar("cat", "car"); v.Similar {
		t.Fatalf("expected distinct for short tags, got %+v", v)
	}
}

func TestDedupeByStemKeepsFirstOccurrence(t *testing.T) {
	res := DedupeByStem([]string{"silver ring", "Silver Rings", "gold necklace", "silver-ring"})
	if len(res.Unique) != 2 {
		t.Fatalf("unique = %v, want 2 entries", res.Unique)
	}
	if res.Unique[0] != "silver ring" || res.Unique[1] != "gold necklace" {
		t.Fatalf("unexpected unique order: %v", res.Unique)
	}
	if len(res.Dropped) != 2 {
		t.Fatalf("dropped = %v, want 2 entries", res.Dropped)
	}
	dups := res.Duplicates["silver ring"]
	if len(dups) != 2 {
		t.Fatalf("duplicates for keeper = %v, want 2", dups)
	}
}

func TestDedupeByStemSkipsEmptyKeys(t *testing.T) {
	res := DedupeByStem([]string{"  ", "!!!", "ring"})
	if len(res.Unique) != 1 || res.Unique[0] != "ring" {
		t.Fatalf("unique = %v, want [ring]", res.Unique)
	}
	if len(res.Dropped) != 0 {
		t.Fatalf("dropped = %v, want empty", res.Dropped)
	}
}
