package refine

import (
	"strings"

	"brandkit/internal/domain"
)

// The logo path consults these deterministic tables before any backend call.
// They are lookup data, not generated text; the selected entries are
// concatenated into the instruction sent to the text backend.

var styleGuidance = map[domain.LogoStyle]string{
	domain.StyleWordMark:        "Professional wordmark logo design, elegant custom typography, perfect letter spacing, scalable text treatment, premium font styling, corporate identity standard.",
	domain.StyleLetterMark:      "Minimalist lettermark logo, stylized initials, geometric letter design, sophisticated monogram, balanced letterforms, scalable letter symbol.",
	domain.StylePictorialMark:   "Iconic pictorial logo symbol, recognizable industry icon, simple yet distinctive imagery, clean vector-style illustration, memorable visual symbol.",
	domain.StyleAbstract:        "Abstract geometric logo design, unique symbolic representation, modern abstract shapes, sophisticated geometry, distinctive visual pattern.",
	domain.StyleCombinationMark: "Professional combination mark logo, wordmark with symbolic element, integrated text and icon design, balanced typography and imagery, cohesive identity system.",
	domain.StyleEmblem:          "Classic emblem logo design, badge-style brand mark, traditional crest elements, enclosed design format, authoritative brand emblem.",
}

var industryGuidance = map[string]string{
	"technology": "Convey innovation and precision; favor clean geometry and forward motion; avoid ornate detail.",
	"healthcare": "Convey trust, care, and calm; favor soft curves and balanced symmetry; avoid aggressive shapes.",
	"food":       "Convey appetite appeal and warmth; favor organic shapes and inviting forms; avoid clinical coldness.",
	"fashion":    "Convey elegance and aspiration; favor refined line work and confident negative space.",
	"finance":    "Convey stability and credibility; favor solid structure and upward orientation; avoid playfulness.",
	"education":  "Convey growth and approachability; favor open forms and clear hierarchy.",
	"fitness":    "Convey energy and momentum; favor dynamic angles and strong contrast.",
	"travel":     "Convey freedom and discovery; favor horizon lines and open composition.",
}

const defaultIndustryGuidance = "Convey professionalism and memorability; favor simple, distinctive forms that scale from favicon to billboard."

var industryPalettes = map[string]string{
	"technology": "deep blue with a single electric accent",
	"healthcare": "calm teal and white with a soft green accent",
	"food":       "warm red and golden yellow tones",
	"fashion":    "black and off-white with a muted gold accent",
	"finance":    "navy and slate with a restrained green accent",
	"education":  "royal blue and warm orange",
	"fitness":    "high-contrast black with a vivid orange accent",
	"travel":     "ocean blue and sunset coral",
}

const defaultPalette = "two solid brand colors with high mutual contrast"

var tonePalettes = map[string]string{
	"professional": "clean sans-serif typography with generous spacing",
	"friendly":     "rounded, approachable letterforms",
	"modern":       "geometric sans-serif with tight optical balance",
	"traditional":  "classic serif letterforms with stable proportions",
	"playful":      "soft, slightly irregular letterforms with character",
	"luxury":       "high-contrast serif or refined extended sans-serif",
	"bold":         "heavy-weight condensed sans-serif",
	"minimal":      "thin-weight sans-serif with wide tracking",
}

const defaultTypography = "versatile sans-serif typography that stays legible at small sizes"

// StyleGuidance returns the design guidance for a logo style.
func StyleGuidance(style domain.LogoStyle) string {
	if g, ok := styleGuidance[style]; ok {
		return g
	}
	return styleGuidance[domain.StyleCombinationMark]
}

// IndustryGuidance returns the psychological constraints for an industry.
// Matching is by keyword containment so inputs like "Food & Beverage" hit
// the "food" entry.
func IndustryGuidance(industry string) string {
	key := strings.ToLower(strings.TrimSpace(industry))
	if g, ok := industryGuidance[key]; ok {
		return g
	}
	for k, g := range industryGuidance {
		if strings.Contains(key, k) {
			return g
		}
	}
	return defaultIndustryGuidance
}

// PaletteRecommendation returns the explicit preference when given, else the
// industry-keyed default.
func PaletteRecommendation(preferred, industry string) string {
	if p := strings.TrimSpace(preferred); p != "" {
		return p
	}
	key := strings.ToLower(strings.TrimSpace(industry))
	if p, ok := industryPalettes[key]; ok {
		return p
	}
	for k, p := range industryPalettes {
		if strings.Contains(key, k) {
			return p
		}
	}
	return defaultPalette
}

// TypographyRecommendation returns the typography direction keyed by tone.
func TypographyRecommendation(tone string) string {
	key := strings.ToLower(strings.TrimSpace(tone))
	if tpl, ok := tonePalettes[key]; ok {
		return tpl
	}
	for k, tpl := range tonePalettes {
		if strings.Contains(key, k) {
			return tpl
		}
	}
	return defaultTypography
}
