package domain

// GenerationResult is the outcome of one backend invocation. Exactly one of
// URL and Err is non-empty; SuccessResult and ErrorResult keep that invariant.
type GenerationResult struct {
	URL         string `json:"image_url,omitempty"`
	LocalPath   string `json:"local_path,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
	Err         string `json:"error,omitempty"`
	SlideNumber int    `json:"slide_number,omitempty"`
	RawText     string `json:"raw_output,omitempty"`
}

// SuccessResult builds a result for a usable asset.
func SuccessResult(url, localPath, filename string, seed *int64) GenerationResult {
	return GenerationResult{
		URL:       url,
		LocalPath: localPath,
		Filename:  filename,
		Seed:      seed,
	}
}

// ErrorResult builds a failed result carrying a diagnostic message.
func ErrorResult(msg string) GenerationResult {
	return GenerationResult{Err: msg}
}

// OK reports whether the result carries a usable asset.
func (r GenerationResult) OK() bool {
	return r.Err == ""
}

// Valid reports whether the result honors the exactly-one invariant.
func (r GenerationResult) Valid() bool {
	return (r.URL != "") != (r.Err != "")
}

// BatchResult is the ordered outcome of a multi-item workflow. Item order
// matches input order; Total and Successful stay consistent through Append.
type BatchResult struct {
	Items      []GenerationResult `json:"items"`
	Total      int                `json:"total_items"`
	Successful int                `json:"successful_items"`
}

// Append records one item outcome and updates the aggregate counts.
func (b *BatchResult) Append(r GenerationResult) {
	b.Items = append(b.Items, r)
	b.Total = len(b.Items)
	if r.OK() {
		b.Successful++
	}
}

// Valid reports whether the count invariants hold.
func (b *BatchResult) Valid() bool {
	if b.Total != len(b.Items) {
		return false
	}
	ok := 0
	for _, item := range b.Items {
		if item.OK() {
			ok++
		}
	}
	return ok == b.Successful
}

// DualOutcome pairs the raw results of the two configured backends with the
// selected winner and a human-readable rationale. Both raw outcomes are kept
// for audit even though only Selected flows downstream.
type DualOutcome struct {
	Primary   GenerationResult `json:"primary"`
	Secondary GenerationResult `json:"secondary"`
	Selected  GenerationResult `json:"selected"`
	Rationale string           `json:"rationale"`
}
