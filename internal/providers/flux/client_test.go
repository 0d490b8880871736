package flux

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateDecodesAssets(t *testing.T) {
	seed := int64(424242)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fal-ai/flux-pro" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Key dummy" {
			t.Fatalf("Authorization = %q", got)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ImageSize != "square_hd" || req.Steps != 28 {
			t.Fatalf("unexpected profile fields: %#v", req)
		}
		_ = json.NewEncoder(w).Encode(Response{
			Images: []Image{{URL: "https://cdn.example.com/image.png", Width: 1024, Height: 1024}},
			Seed:   &seed,
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "dummy", Model: "fal-ai/flux-pro", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := client.Generate(context.Background(), Request{
		Prompt:    "a fox",
		ImageSize: "square_hd",
		Steps:     28,
		Guidance:  3.5,
		NumImages: 1,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp.Images[0].URL != "https://cdn.example.com/image.png" {
		t.Fatalf("URL = %q", resp.Images[0].URL)
	}
	if resp.Seed == nil || *resp.Seed != 424242 {
		t.Fatalf("Seed = %v", resp.Seed)
	}
}

func TestGenerateMapsStatusToError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": "prompt too long"})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "dummy", Model: "fal-ai/flux-pro", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error for 422 status")
	}
}

func TestGenerateRejectsEmptyImageList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "dummy", Model: "fal-ai/flux-pro", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error for empty image list")
	}
}

func TestDownloadNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "dummy", Model: "fal-ai/flux-pro", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = client.Download(context.Background(), srv.URL+"/missing.png")
	if err == nil {
		t.Fatal("expected error for 404 download")
	}
	if got := err.Error(); got != "flux: download status 404" {
		t.Fatalf("error = %q", got)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestDownloadUsesDedicatedClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(Response{
				Images: []Image{{URL: "https://cdn.example.com/image.png"}},
			})
			return
		}
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	client, err := NewClient(Options{
		APIKey:  "dummy",
		Model:   "fal-ai/flux-pro",
		BaseURL: srv.URL,
		DownloadHTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("download deadline exceeded")
		})},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Generate(context.Background(), Request{Prompt: "x"}); err != nil {
		t.Fatalf("Generate should use the main client: %v", err)
	}
	_, err = client.Download(context.Background(), srv.URL+"/image.png")
	if err == nil || !strings.Contains(err.Error(), "download deadline exceeded") {
		t.Fatalf("download should use the dedicated client, err = %v", err)
	}
}

func TestDownloadReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "dummy", Model: "fal-ai/flux-pro", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	data, err := client.Download(context.Background(), srv.URL+"/image.png")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("data = %q", data)
	}
}
