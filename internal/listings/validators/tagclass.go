package validators

import (
	"regexp"
	"strings"
)

// Tag layers of the tri-layer Etsy tag strategy.
const (
	LayerSEO       = "seo"
	LayerOccasion  = "occasion"
	LayerAudience  = "audience"
	LayerAttribute = "attribute"
	LayerUnknown   = "unknown"
)

// audiencePriority wins over every pattern group: these terms would
// otherwise match SEO or occasion patterns.
var audiencePriority = map[string]bool{
	"women": true, "men": true, "girls": true, "boys": true,
	"kids": true, "children": true, "teens": true, "adults": true,
	"mom": true, "dad": true, "mother": true, "father": true,
	"sister": true, "brother": true, "friend": true, "couple": true,
	"wife": true, "husband": true, "girlfriend": true, "boyfriend": true,
	"family": true, "parent": true,
}

type layerPatterns struct {
	layer    string
	patterns []*regexp.Regexp
}

// layerRules is evaluated in order; the first matching group wins.
var layerRules = []layerPatterns{
	{LayerSEO, compileAll(
		// jewelry types
		`^(ring|necklace|bracelet|earrings|pendant|charm|jewelry|jewellery)$`,
		`^(anklet|brooch|cufflinks|tiara|crown|hairpin|clip)$`,
		// materials and finishes
		`^(silver|gold|bronze|copper|stainless|sterling|plated)$`,
		`^(rose gold|white gold|gold filled|gold plated|silver plated)$`,
		`^(titanium|platinum|brass|pewter|alloy|metal)$`,
		// crafting and quality terms, partial matches for compound tags
		`hand(made|crafted)?`,
		`custom`,
		`personal(ised|ized)?`,
		`unique`,
		`artisan`,
		`craft`,
		`bespoke`,
		`(made to order|one of a kind|exclusive)`,
		`(quality|premium|luxury|fine|elegant|sophisticated)`,
		// style descriptors
		`(vintage|antique|retro|classic|modern|contemporary)`,
		`(bohemian|boho|minimalist|geometric|organic|abstract)`,
		`(rustic|industrial|art deco|victorian|gothic|celtic)`,
		`(elegant|sophisticated|stylish|fashionable|chic)`,
		// size and scale
		`^(small|large|mini|oversized|delicate|bold|statement)$`,
		`^(tiny|huge|petite|chunky|thick|thin|wide|narrow)$`,
		// common search terms
		`^(gift|present|surprise|special|perfect|beautiful)$`,
		`^(trendy|stylish|fashionable|chic|cute|pretty|gorgeous)$`,
		`^(affordable|budget|cheap|expensive|luxury|premium)$`,
		// gemstones
		`^(diamond|ruby|sapphire|emerald|pearl|opal|turquoise)$`,
		`^(amethyst|garnet|topaz|citrine|peridot|aquamarine)$`,
		`^(birthstone|crystal|stone|gem|gemstone|precious)$`,
		// techniques and features
		`^(engraved|stamped|embossed|textured|polished|matte)$`,
		`^(adjustable|stackable|layered|chain|cord|wire)$`,
	)},
	{LayerOccasion, compileAll(
		`^(birthday|anniversary|wedding|graduation|christmas|valentine)$`,
		`^(gift|present|surprise|celebration|party|holiday)$`,
		`^(day|week|season|event|ceremony|festival)$`,
		`(gift|present)`, // compound gift words
		`^(special|perfect|ideal|wonderful|amazing)$`,
	)},
	{LayerAudience, compileAll(
		`^(women|men|girls|boys|kids|children|teens|adults)$`,
		`^(mom|dad|mother|father|sister|brother|friend|couple)$`,
		`^(her|him|them|unisex|family|parents)$`,
		`^(professional|student|teacher|nurse|artist|musician)$`,
		`^(wife|husband|girlfriend|boyfriend|partner)$`,
		`^(baby|infant|toddler|child|teen|adult|senior)$`,
		`^(homeowners|gardeners|plant lovers|office workers|remote employees)$`,
	)},
	{LayerAttribute, compileAll(
		`^(blue|red|green|yellow|black|white|pink|purple|orange)$`,
		`^(round|square|oval|heart|star|flower|geometric|abstract)$`,
		`^(matte|shiny|glossy|textured|smooth|rough|polished)$`,
		`^(casual|formal|elegant|bohemian|minimalist|rustic)$`,
	)},
}

var shortAttributeRe = regexp.MustCompile(`^[a-z]+$`)

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// ClassifyTag assigns a tag to one layer. Priority audience terms are
// checked before the pattern groups; fallback heuristics catch compound
// gift/audience phrases and short descriptive words.
func ClassifyTag(tag string) string {
	cleanTag := strings.ToLower(strings.TrimSpace(tag))
	if cleanTag == "" {
		return LayerUnknown
	}
	if audiencePriority[cleanTag] {
		return LayerAudience
	}

	for _, group := range layerRules {
		for _, pattern := range group.patterns {
			if pattern.MatchString(cleanTag) {
				return group.layer
			}
		}
	}

	if strings.Contains(cleanTag, "gift") || strings.Contains(cleanTag, "present") {
		return LayerOccasion
	}
	if strings.Contains(cleanTag, "for") || strings.Contains(cleanTag, "her") || strings.Contains(cleanTag, "him") {
		return LayerAudience
	}
	if len(cleanTag) <= 4 && shortAttributeRe.MatchString(cleanTag) {
		return LayerAttribute
	}
	return LayerUnknown
}
