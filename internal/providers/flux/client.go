// Package flux calls the FAL synchronous run API for the flux model family.
package flux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://fal.run"
	defaultTimeout = 90 * time.Second
)

type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	// DownloadHTTPClient serves asset downloads; they finish much faster
	// than generation, so they get their own timeout. Defaults to HTTPClient.
	DownloadHTTPClient *http.Client
}

type Client struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	download *http.Client
}

// Request mirrors the flux run arguments. The parameter profile is fixed per
// content category upstream; nothing here is user-overridable except Prompt.
type Request struct {
	Prompt        string  `json:"prompt"`
	ImageSize     string  `json:"image_size,omitempty"`
	Steps         int     `json:"num_inference_steps,omitempty"`
	Guidance      float64 `json:"guidance_scale,omitempty"`
	NumImages     int     `json:"num_images,omitempty"`
	SafetyChecker bool    `json:"enable_safety_checker"`
	OutputFormat  string  `json:"output_format,omitempty"`
}

type Image struct {
	URL         string `json:"url"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

type Response struct {
	Images []Image `json:"images"`
	Seed   *int64  `json:"seed,omitempty"`
}

type errorResponse struct {
	Detail any `json:"detail,omitempty"`
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("fal api key is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("flux model is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	download := opts.DownloadHTTPClient
	if download == nil {
		download = client
	}
	return &Client{
		apiKey:   strings.TrimSpace(opts.APIKey),
		model:    strings.Trim(opts.Model, "/"),
		baseURL:  baseURL,
		client:   client,
		download: download,
	}, nil
}

// Model returns the configured model path, e.g. "fal-ai/flux-pro".
func (c *Client) Model() string {
	return c.model
}

// Generate runs the model once and returns the asset descriptors. A non-2xx
// status or malformed payload is returned as an error for the adapter to
// record; this client never retries.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("flux: marshal request: %w", err)
	}
	endpoint := c.baseURL + "/" + c.model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("flux: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Key "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("flux: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Detail != nil {
			return nil, fmt.Errorf("flux: status %d: %v", resp.StatusCode, apiErr.Detail)
		}
		return nil, fmt.Errorf("flux: status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("flux: decode response: %w", err)
	}
	if len(out.Images) == 0 {
		return nil, errors.New("flux: no images returned")
	}
	if strings.TrimSpace(out.Images[0].URL) == "" {
		return nil, errors.New("flux: missing image url")
	}
	return &out, nil
}

// Download fetches the asset bytes behind a returned URL. Any status other
// than 200 is an error carrying the status code.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("flux: build download request: %w", err)
	}
	resp, err := c.download.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("flux: download: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flux: download status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flux: read download body: %w", err)
	}
	return data, nil
}
