// Panel client for making HTTP requests to the admin panel backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
)

// DefaultPanelURL is where the panel backend listens when no URL is configured.
const DefaultPanelURL = "http://localhost:5000"

// PanelClient implements [TextFileStore] against the admin panel backend.
type PanelClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ TextFileStore = (*PanelClient)(nil)

// NewPanelClient creates a client for the panel at baseURL.
func NewPanelClient(baseURL string, client *http.Client) *PanelClient {
	if baseURL == "" {
		baseURL = DefaultPanelURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &PanelClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// BaseURL returns the panel address requests are sent to.
func (p *PanelClient) BaseURL() string { return p.baseURL }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request to the specified path and returns the raw response.
func (p *PanelClient) Get(ctx context.Context, path string) (*APIResponse, error) {
	return p.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (p *PanelClient) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return p.do(ctx, http.MethodPost, path, data)
}

func (p *PanelClient) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// GetTextFile fetches a profile's titles or descriptions from the panel.
func (p *PanelClient) GetTextFile(ctx context.Context, profile string, kind models.Kind) (string, error) {
	path := fmt.Sprintf("/get_text_file/%s/%s", url.PathEscape(profile), url.PathEscape(string(kind)))

	resp, err := p.Get(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("%w: GET %s returned %d", shared.ErrAPIRequest, path, resp.StatusCode)
	}

	var out TextFileResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("%w: failed to decode text file: %v", shared.ErrAPIRequest, err)
	}
	return out.Content, nil
}

// SaveTextFile replaces a profile's titles or descriptions on the panel.
func (p *PanelClient) SaveTextFile(ctx context.Context, profile string, kind models.Kind, content string) error {
	data, err := json.Marshal(TextFileRequest{ProfileName: profile, FileType: string(kind), Content: content})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := p.Post(ctx, "/save_text_file", data)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: POST /save_text_file returned %d: %s", shared.ErrAPIRequest, resp.StatusCode, bytes.TrimSpace(resp.Body))
	}
	return nil
}
