// Package refine rewrites raw generation requests into backend-optimized
// instructions. Every path degrades to a deterministic template when the text
// backend fails; callers never see an error.
package refine

import (
	"context"
	"fmt"
	"strings"

	"brandkit/internal/domain"
	"brandkit/internal/infra"
	"brandkit/internal/providers/claude"
)

// Completer is the text-generation backend contract the refiner depends on.
type Completer interface {
	Complete(ctx context.Context, req claude.CompletionRequest) (string, error)
}

type Refiner struct {
	completer Completer
	logger    infra.Logger
}

func NewRefiner(completer Completer, logger infra.Logger) *Refiner {
	return &Refiner{completer: completer, logger: logger}
}

// Refine produces the instruction for one request. Failures from the backend
// are absorbed into the fallback template; the provenance flag tells the two
// outcomes apart.
func (r *Refiner) Refine(ctx context.Context, req domain.GenerationRequest) domain.RefinedInstruction {
	var (
		system      string
		user        string
		maxTokens   int
		temperature float64
	)
	switch req.Category {
	case domain.CategoryLogo:
		system = logoSystemPrompt
		user = r.buildLogoUserPrompt(req)
		maxTokens = 1200
		temperature = 0.7
	case domain.CategoryCaption:
		system = captionSystemPrompt
		user = buildCaptionUserPrompt(req)
		maxTokens = 1000
		temperature = 0.8
	case domain.CategoryHashtags:
		system = hashtagSystemPrompt
		user = buildHashtagUserPrompt(req.Prompt, "", req.Context.Platform)
		maxTokens = 500
		temperature = 0.6
	default:
		system = imageSystemPrompt
		user = buildImageUserPrompt(req)
		maxTokens = 1000
		temperature = 0.7
	}

	text, err := r.completer.Complete(ctx, claude.CompletionRequest{
		System:      system,
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		r.logger.Warn().
			Err(err).
			Str("category", string(req.Category)).
			Msg("refine: backend failed, using fallback template")
		return domain.RefinedInstruction{
			Category:   req.Category,
			Text:       r.fallback(req),
			Provenance: domain.ProvenanceFallback,
		}
	}
	return domain.RefinedInstruction{
		Category:   req.Category,
		Text:       strings.TrimSpace(text),
		Provenance: domain.ProvenanceRefined,
	}
}

// RefineHashtags asks the backend for an optimized tag list and splits the
// response into discrete tokens. Lines not starting with '#' are discarded;
// when nothing valid comes back the original list is returned unchanged.
func (r *Refiner) RefineHashtags(ctx context.Context, tags []string, contentContext, platform string) []string {
	joined := strings.Join(tags, ", ")
	if joined == "" {
		joined = "No hashtags provided"
	}
	text, err := r.completer.Complete(ctx, claude.CompletionRequest{
		System:      hashtagSystemPrompt,
		User:        buildHashtagUserPrompt(joined, contentContext, platform),
		MaxTokens:   500,
		Temperature: 0.6,
	})
	if err != nil {
		r.logger.Warn().Err(err).Msg("refine: hashtag backend failed, keeping original list")
		return tags
	}
	refined := SplitHashtags(text)
	if len(refined) == 0 {
		return tags
	}
	return refined
}

// AnalyzeLogo produces the brand-effectiveness narrative for a finished logo.
// On backend failure a deterministic paragraph is returned instead.
func (r *Refiner) AnalyzeLogo(ctx context.Context, req domain.GenerationRequest) string {
	text, err := r.completer.Complete(ctx, claude.CompletionRequest{
		System:      analysisSystemPrompt,
		User:        buildAnalysisUserPrompt(req),
		MaxTokens:   2000,
		Temperature: 0.8,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		r.logger.Warn().Err(err).Msg("refine: analysis backend failed, using fallback paragraph")
		return fmt.Sprintf(
			"This %s logo represents %s through established brand identity principles, combining visual clarity with the positioning cues of the %s space.",
			req.Style, req.Context.CompanyName, nonEmpty(req.Context.Industry, "target"),
		)
	}
	return strings.TrimSpace(text)
}

// PlanCalendar drafts a posting plan for the theme across the given
// platforms. On backend failure a deterministic week-by-week outline is
// returned.
func (r *Refiner) PlanCalendar(ctx context.Context, theme string, platforms []string, weeks int) string {
	text, err := r.completer.Complete(ctx, claude.CompletionRequest{
		System:      calendarSystemPrompt,
		User:        buildCalendarUserPrompt(theme, platforms, weeks),
		MaxTokens:   2000,
		Temperature: 0.8,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		r.logger.Warn().Err(err).Msg("refine: calendar backend failed, using fallback outline")
		return fallbackCalendarOutline(theme, platforms, weeks)
	}
	return strings.TrimSpace(text)
}

func fallbackCalendarOutline(theme string, platforms []string, weeks int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Content plan for %q on %s.\n", theme, strings.Join(platforms, ", "))
	for week := 1; week <= weeks; week++ {
		fmt.Fprintf(&b, "Week %d: three posts per platform around %q — one educational, one behind-the-scenes, one call to action.\n", week, theme)
	}
	return b.String()
}

func buildCalendarUserPrompt(theme string, platforms []string, weeks int) string {
	var b strings.Builder
	b.WriteString("Draft a social media content calendar.\n\n")
	fmt.Fprintf(&b, "Theme: %s\n", theme)
	fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(platforms, ", "))
	fmt.Fprintf(&b, "Duration: %d week(s)\n", weeks)
	b.WriteString("\nFor each week list concrete post ideas per platform with suggested posting days and content formats.")
	return b.String()
}

// SplitHashtags extracts '#'-prefixed tokens, one per response line.
func SplitHashtags(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}

func (r *Refiner) fallback(req domain.GenerationRequest) string {
	switch req.Category {
	case domain.CategoryLogo:
		return LogoFallbackTemplate(req)
	case domain.CategoryCaption:
		return req.Prompt
	case domain.CategoryHashtags:
		return req.Prompt
	default:
		return ImageFallbackTemplate(req)
	}
}

// LogoFallbackTemplate wraps the raw prompt in the mandatory logo constraints
// plus the deterministic style/industry/palette/typography lookups. It never
// depends on the backend.
func LogoFallbackTemplate(req domain.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Professional %s logo design for %s. ", req.Style, req.Context.CompanyName)
	b.WriteString(req.Prompt)
	b.WriteString(" ")
	b.WriteString(StyleGuidance(req.Style))
	b.WriteString(" ")
	b.WriteString(IndustryGuidance(req.Context.Industry))
	fmt.Fprintf(&b, " Color palette: %s.", PaletteRecommendation(req.Context.PreferredColor, req.Context.Industry))
	fmt.Fprintf(&b, " Typography: %s.", TypographyRecommendation(req.Context.Tone))
	fmt.Fprintf(&b, " Only the company name %q as text, English text only, transparent background,", req.Context.CompanyName)
	b.WriteString(" single standalone logo, scalable vector appearance, clean lines, no gradients, solid colors, high contrast.")
	return b.String()
}

// ImageFallbackTemplate re-asserts the general image quality constraints
// around the raw prompt.
func ImageFallbackTemplate(req domain.GenerationRequest) string {
	var b strings.Builder
	b.WriteString(req.Prompt)
	b.WriteString(", 8K resolution, ultra-detailed, crisp and sharp, no artifacts,")
	b.WriteString(" bold crystal-clear text with perfect spelling, high contrast for readability,")
	b.WriteString(" professional grade quality, trending social media aesthetic")
	if req.Category == domain.CategoryStory {
		b.WriteString(", vertical 9:16 composition")
	}
	return b.String()
}

func (r *Refiner) buildLogoUserPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a prompt for a professional, iconic logo.\n\n")
	fmt.Fprintf(&b, "Original prompt: %s\n", req.Prompt)
	fmt.Fprintf(&b, "Company: %s\n", req.Context.CompanyName)
	if req.Context.CompanyDescription != "" {
		fmt.Fprintf(&b, "About: %s\n", req.Context.CompanyDescription)
	}
	fmt.Fprintf(&b, "Logo style: %s\n", req.Style)
	fmt.Fprintf(&b, "Style direction: %s\n", StyleGuidance(req.Style))
	fmt.Fprintf(&b, "Industry direction: %s\n", IndustryGuidance(req.Context.Industry))
	fmt.Fprintf(&b, "Color palette: %s\n", PaletteRecommendation(req.Context.PreferredColor, req.Context.Industry))
	fmt.Fprintf(&b, "Typography: %s\n", TypographyRecommendation(req.Context.Tone))
	b.WriteString("\nRequirements: scalable from favicon to billboard, timeless over trendy, ")
	fmt.Fprintf(&b, "only the company name %q as text and in English, high contrast, works in single-color reproduction.", req.Context.CompanyName)
	return b.String()
}

func buildImageUserPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a high-quality image generation prompt.\n\n")
	fmt.Fprintf(&b, "Original prompt: %s\n", req.Prompt)
	if req.Context.Platform != "" {
		fmt.Fprintf(&b, "Platform: %s\n", req.Context.Platform)
	}
	switch req.Category {
	case domain.CategoryStory:
		b.WriteString("Format: vertical story, 9:16.\n")
	case domain.CategoryCarousel:
		fmt.Fprintf(&b, "Format: carousel slide %d.\n", req.SlideNumber)
	}
	b.WriteString("\nPreserve the exact spelling of any text that appears in the image. ")
	b.WriteString("Specify 8K resolution, ultra-detailed, no artifacts, bold crystal-clear text with perfect spelling, and high contrast for readability.")
	return b.String()
}

func buildCaptionUserPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Refine this social media caption for maximum engagement.\n\n")
	fmt.Fprintf(&b, "Original caption: %s\n", req.Prompt)
	if req.Context.Platform != "" {
		fmt.Fprintf(&b, "Platform: %s\n", req.Context.Platform)
	}
	if req.Context.Tone != "" {
		fmt.Fprintf(&b, "Brand tone: %s\n", req.Context.Tone)
	}
	b.WriteString("\nKeep the brand voice, add a hook-driven first line, and make it platform-appropriate.")
	return b.String()
}

func buildHashtagUserPrompt(tags, contentContext, platform string) string {
	var b strings.Builder
	b.WriteString("Refine this hashtag strategy for maximum reach.\n\n")
	fmt.Fprintf(&b, "Original hashtags: %s\n", tags)
	if contentContext != "" {
		fmt.Fprintf(&b, "Content context: %s\n", contentContext)
	}
	if platform != "" {
		fmt.Fprintf(&b, "Platform: %s\n", platform)
	}
	b.WriteString("\nReturn only the hashtags, one per line, each starting with the # symbol.")
	return b.String()
}

func buildAnalysisUserPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Analyze why this logo design fits the company.\n\n")
	fmt.Fprintf(&b, "Company: %s\n", req.Context.CompanyName)
	if req.Context.CompanyDescription != "" {
		fmt.Fprintf(&b, "About: %s\n", req.Context.CompanyDescription)
	}
	fmt.Fprintf(&b, "Industry: %s\nBrand tone: %s\nColor preference: %s\nLogo style: %s\n",
		req.Context.Industry, req.Context.Tone, req.Context.PreferredColor, req.Style)
	b.WriteString("\nCover brand psychology, differentiation, scalability, and color/typography choices. Be specific and concise.")
	return b.String()
}

func nonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

const imageSystemPrompt = "You are an expert image-generation prompt engineer for social media visuals. " +
	"Preserve the exact spelling of any text from the original prompt; only enhance the visual description around it. " +
	"Always specify perfect typography, text placement, composition, lighting, and maximum quality keywords for the detected art style. " +
	"Respond with the refined prompt only."

const logoSystemPrompt = "You are a logo design expert and image-generation prompt engineer. " +
	"You understand logo psychology, typography, color theory, and scalable design across all logo styles. " +
	"Produce prompts for professional, timeless, trademark-ready logo designs with solid colors, clean lines, and high contrast. " +
	"Respond with the refined prompt only."

const captionSystemPrompt = "You are an expert social media copywriter. " +
	"Your captions are hook-driven, emotionally engaging, platform-optimized, and end with a clear call to action. " +
	"Respond with the refined caption only."

const hashtagSystemPrompt = "You are a social media growth strategist specializing in hashtag strategy. " +
	"Mix trending and niche hashtags, match the platform's optimal volume, and target the right audience. " +
	"Respond with hashtags only, one per line, each starting with #."

const calendarSystemPrompt = "You are a social media content strategist. " +
	"You design realistic posting calendars that balance reach, engagement, and conversion content across platforms. " +
	"Respond with the calendar only, organized week by week."

const analysisSystemPrompt = "You are a brand strategist and logo psychology expert. " +
	"Explain why a given logo design works for a company: emotional triggers, audience fit, differentiation, scalability, and color and typography psychology. " +
	"Write clear prose with concrete observations."
