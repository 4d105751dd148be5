package validators

import "testing"

func TestClassifyTag(t *testing.T) {
	cases := []struct {
		tag  string
		want string
	}{
		// priority audience terms win even when other patterns match
		{"women", LayerAudience},
		{"mom", LayerAudience},
		{"family", LayerAudience},

		{"ring", LayerSEO},
		{"sterling", LayerSEO},
		{"handmade jewelry box", LayerSEO},
		{"vintage style", LayerSEO},
		{"gift", LayerSEO}, // anchored SEO search term, seen before occasion

		{"birthday", LayerOccasion},
		{"christmas", LayerOccasion},
		{"gift wrap", LayerOccasion}, // compound gift word

		{"her", LayerAudience},
		{"teacher", LayerAudience},

		{"blue", LayerAttribute},
		{"round", LayerAttribute},

		// fallbacks
		{"for her birthday party hats", LayerAudience},
		{"zin", LayerAttribute}, // short lowercase word
		{"zzqx qwzzy", LayerUnknown},
		{"", LayerUnknown},
		{"   ", LayerUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyTag(tc.tag); got != tc.want {
			t.Fatalf("ClassifyTag(%q) = %q, want %q", tc.tag, got, tc.want)
		}
	}
}

func TestClassifyTagIsCaseInsensitive(t *testing.T) {
	if got := ClassifyTag("BIRTHDAY"); got != LayerOccasion {
		t.Fatalf("ClassifyTag(BIRTHDAY) = %q, want %q", got, LayerOccasion)
	}
	if got := ClassifyTag("  Ring  "); got != LayerSEO {
		t.Fatalf("ClassifyTag(Ring) = %q, want %q", got, LayerSEO)
	}
}
