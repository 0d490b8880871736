package domain

import "testing"

func TestResultExactlyOneOfURLAndErr(t *testing.T) {
	success := SuccessResult("https://cdn.example.com/a.png", "/tmp/a.png", "a.png", nil)
	if !success.Valid() {
		t.Fatalf("success result should be valid: %#v", success)
	}
	failure := ErrorResult("backend unreachable")
	if !failure.Valid() {
		t.Fatalf("error result should be valid: %#v", failure)
	}
	both := GenerationResult{URL: "https://x/a.png", Err: "boom"}
	if both.Valid() {
		t.Fatal("result with both URL and Err must be invalid")
	}
	neither := GenerationResult{}
	if neither.Valid() {
		t.Fatal("result with neither URL nor Err must be invalid")
	}
}

func TestBatchResultCounts(t *testing.T) {
	var batch BatchResult
	batch.Append(SuccessResult("https://x/1.png", "", "1.png", nil))
	batch.Append(ErrorResult("download failed: 404"))
	batch.Append(SuccessResult("https://x/3.png", "", "3.png", nil))

	if batch.Total != 3 {
		t.Fatalf("Total = %d, want 3", batch.Total)
	}
	if batch.Successful != 2 {
		t.Fatalf("Successful = %d, want 2", batch.Successful)
	}
	if !batch.Valid() {
		t.Fatalf("batch should satisfy count invariants: %#v", batch)
	}
}

func TestBatchResultValidDetectsDrift(t *testing.T) {
	batch := BatchResult{
		Items:      []GenerationResult{SuccessResult("https://x/1.png", "", "1.png", nil)},
		Total:      2,
		Successful: 1,
	}
	if batch.Valid() {
		t.Fatal("mismatched Total should fail validation")
	}
}

func TestParseLogoStyle(t *testing.T) {
	style, ok := ParseLogoStyle("6")
	if !ok || style != StyleEmblem {
		t.Fatalf("ParseLogoStyle(6) = %q, %v", style, ok)
	}
	if _, ok := ParseLogoStyle("7"); ok {
		t.Fatal("ParseLogoStyle(7) should fail")
	}
	style, ok = ParseLogoStyle("combination mark")
	if !ok || style != StyleCombinationMark {
		t.Fatalf("ParseLogoStyle(combination mark) = %q, %v", style, ok)
	}
}
