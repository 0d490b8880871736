package refine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"brandkit/internal/domain"
	"brandkit/internal/providers/claude"
)

type completerFunc func(ctx context.Context, req claude.CompletionRequest) (string, error)

func (f completerFunc) Complete(ctx context.Context, req claude.CompletionRequest) (string, error) {
	return f(ctx, req)
}

func logoRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Category: domain.CategoryLogo,
		Prompt:   "a fox curled around the letter A",
		Style:    domain.StylePictorialMark,
		Context: domain.BrandContext{
			CompanyName: "Acme Studios",
			Industry:    "Technology",
			Tone:        "modern",
		},
	}
}

func TestRefineUsesBackendResult(t *testing.T) {
	var captured claude.CompletionRequest
	completer := completerFunc(func(_ context.Context, req claude.CompletionRequest) (string, error) {
		captured = req
		return "  refined fox logo prompt  ", nil
	})
	r := NewRefiner(completer, zerolog.Nop())

	out := r.Refine(context.Background(), logoRequest())
	if out.Provenance != domain.ProvenanceRefined {
		t.Fatalf("provenance = %q", out.Provenance)
	}
	if out.Text != "refined fox logo prompt" {
		t.Fatalf("text = %q", out.Text)
	}
	if captured.MaxTokens != 1200 || captured.Temperature != 0.7 {
		t.Fatalf("logo tuning = %d tokens, %v temperature", captured.MaxTokens, captured.Temperature)
	}
	if !strings.Contains(captured.User, "Acme Studios") {
		t.Fatalf("user prompt missing company name: %q", captured.User)
	}
}

func TestRefineCategoryTuning(t *testing.T) {
	cases := []struct {
		category    domain.ContentCategory
		maxTokens   int
		temperature float64
	}{
		{domain.CategoryImage, 1000, 0.7},
		{domain.CategoryCaption, 1000, 0.8},
		{domain.CategoryHashtags, 500, 0.6},
		{domain.CategoryLogo, 1200, 0.7},
		{domain.CategoryStory, 1000, 0.7},
	}
	for _, tc := range cases {
		var captured claude.CompletionRequest
		completer := completerFunc(func(_ context.Context, req claude.CompletionRequest) (string, error) {
			captured = req
			return "ok", nil
		})
		r := NewRefiner(completer, zerolog.Nop())
		r.Refine(context.Background(), domain.GenerationRequest{Category: tc.category, Prompt: "x"})
		if captured.MaxTokens != tc.maxTokens || captured.Temperature != tc.temperature {
			t.Fatalf("%s tuning = %d tokens, %v temperature", tc.category, captured.MaxTokens, captured.Temperature)
		}
	}
}

func TestRefineLogoFallbackKeepsConstraints(t *testing.T) {
	completer := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "", errors.New("backend unavailable")
	})
	r := NewRefiner(completer, zerolog.Nop())

	req := logoRequest()
	out := r.Refine(context.Background(), req)
	if out.Provenance != domain.ProvenanceFallback {
		t.Fatalf("provenance = %q", out.Provenance)
	}
	for _, want := range []string{
		req.Context.CompanyName,
		req.Prompt,
		"English text only",
		"transparent background",
	} {
		if !strings.Contains(out.Text, want) {
			t.Fatalf("fallback missing %q:\n%s", want, out.Text)
		}
	}
}

func TestRefineFallbackIsDeterministic(t *testing.T) {
	completer := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "", errors.New("down")
	})
	r := NewRefiner(completer, zerolog.Nop())

	req := logoRequest()
	first := r.Refine(context.Background(), req)
	second := r.Refine(context.Background(), req)
	if first.Text != second.Text {
		t.Fatalf("fallback text differs between runs:\n%s\n%s", first.Text, second.Text)
	}
}

func TestRefineCaptionFallbackIsRawPrompt(t *testing.T) {
	completer := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "", errors.New("down")
	})
	r := NewRefiner(completer, zerolog.Nop())

	out := r.Refine(context.Background(), domain.GenerationRequest{
		Category: domain.CategoryCaption,
		Prompt:   "Big sale this weekend!",
	})
	if out.Text != "Big sale this weekend!" {
		t.Fatalf("caption fallback = %q", out.Text)
	}
	if out.Provenance != domain.ProvenanceFallback {
		t.Fatalf("provenance = %q", out.Provenance)
	}
}

func TestRefineEmptyResponseFallsBack(t *testing.T) {
	completer := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "   \n ", nil
	})
	r := NewRefiner(completer, zerolog.Nop())

	out := r.Refine(context.Background(), logoRequest())
	if out.Provenance != domain.ProvenanceFallback {
		t.Fatalf("blank response should fall back, got provenance %q", out.Provenance)
	}
}

func TestRefineHashtagsSplitsLines(t *testing.T) {
	completer := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "Here you go:\n#coffee\n  #morningbrew\nnot a tag\n#café", nil
	})
	r := NewRefiner(completer, zerolog.Nop())

	got := r.RefineHashtags(context.Background(), []string{"#old"}, "coffee shop post", "instagram")
	want := []string{"#coffee", "#morningbrew", "#café"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tag %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRefineHashtagsKeepsOriginalOnFailure(t *testing.T) {
	original := []string{"#one", "#two"}

	failing := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "", errors.New("down")
	})
	r := NewRefiner(failing, zerolog.Nop())
	if got := r.RefineHashtags(context.Background(), original, "", ""); len(got) != 2 || got[0] != "#one" {
		t.Fatalf("got %v", got)
	}

	tagless := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "no tags in this response", nil
	})
	r = NewRefiner(tagless, zerolog.Nop())
	if got := r.RefineHashtags(context.Background(), original, "", ""); len(got) != 2 || got[1] != "#two" {
		t.Fatalf("got %v", got)
	}
}

func TestAnalyzeLogoFallbackNamesCompany(t *testing.T) {
	completer := completerFunc(func(context.Context, claude.CompletionRequest) (string, error) {
		return "", errors.New("down")
	})
	r := NewRefiner(completer, zerolog.Nop())

	got := r.AnalyzeLogo(context.Background(), logoRequest())
	if !strings.Contains(got, "Acme Studios") {
		t.Fatalf("fallback analysis missing company name: %q", got)
	}
}
