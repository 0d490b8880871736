package refine

import (
	"testing"

	"brandkit/internal/domain"
)

func TestStyleGuidanceCoversAllStyles(t *testing.T) {
	for _, style := range domain.LogoStyles {
		if StyleGuidance(style) == "" {
			t.Fatalf("no guidance for style %q", style)
		}
	}
	if StyleGuidance("unknown") != StyleGuidance(domain.StyleCombinationMark) {
		t.Fatal("unknown style should use the combination mark guidance")
	}
}

func TestIndustryGuidanceMatchesByKeyword(t *testing.T) {
	exact := IndustryGuidance("technology")
	contained := IndustryGuidance("Financial Technology Services")
	if exact == defaultIndustryGuidance {
		t.Fatal("exact key fell through to default")
	}
	if contained == defaultIndustryGuidance {
		t.Fatalf("containment match failed: %q", contained)
	}
	if IndustryGuidance("underwater basket weaving") != defaultIndustryGuidance {
		t.Fatal("unmatched industry should use the default guidance")
	}
}

func TestPaletteRecommendationPrefersExplicitColor(t *testing.T) {
	if got := PaletteRecommendation("forest green", "technology"); got != "forest green" {
		t.Fatalf("got %q", got)
	}
	if got := PaletteRecommendation("  ", "technology"); got == defaultPalette {
		t.Fatalf("industry palette expected, got default: %q", got)
	}
	if got := PaletteRecommendation("", "unknown trade"); got != defaultPalette {
		t.Fatalf("got %q", got)
	}
}

func TestTypographyRecommendationKeyedByTone(t *testing.T) {
	if got := TypographyRecommendation("Luxury"); got == defaultTypography {
		t.Fatalf("tone lookup failed: %q", got)
	}
	if got := TypographyRecommendation(""); got != defaultTypography {
		t.Fatalf("got %q", got)
	}
}
