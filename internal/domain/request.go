package domain

// BrandContext carries the optional company facts attached to a generation
// request. All fields may be empty.
type BrandContext struct {
	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	Industry           string `json:"industry,omitempty"`
	Tone               string `json:"tone,omitempty"`
	PreferredColor     string `json:"preferred_color,omitempty"`
	Platform           string `json:"platform,omitempty"`
}

// GenerationRequest is the immutable input of one generation call.
type GenerationRequest struct {
	Category    ContentCategory `json:"category"`
	Prompt      string          `json:"prompt"`
	Style       LogoStyle       `json:"style,omitempty"`
	Context     BrandContext    `json:"context"`
	SlideNumber int             `json:"slide_number,omitempty"`
}

// Provenance records how a refined instruction was produced.
type Provenance string

const (
	ProvenanceRefined  Provenance = "refined"
	ProvenanceFallback Provenance = "fallback-template"
)

// RefinedInstruction is the backend-optimized text derived from a raw request.
type RefinedInstruction struct {
	Category   ContentCategory `json:"category"`
	Text       string          `json:"text"`
	Provenance Provenance      `json:"provenance"`
}
