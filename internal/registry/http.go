package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "version-lsp"

const defaultTimeout = 30 * time.Second

// httpClient is the shared request/response plumbing every registry client
// builds on: a thin wrapper that sets the user agent and decodes JSON
// bodies, leaving per-registry URL construction and normalisation to the
// caller.
type httpClient struct {
	client *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{client: &http.Client{Timeout: defaultTimeout}}
}

func (h *httpClient) fetchJSON(ctx context.Context, url, name string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ErrInvalidResponse{Msg: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return ErrNetwork{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound{Name: name}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrInvalidResponse{Msg: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, url)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ErrInvalidResponse{Msg: err.Error()}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ErrInvalidResponse{Msg: err.Error()}
	}
	return nil
}

func (h *httpClient) fetchText(ctx context.Context, url, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ErrInvalidResponse{Msg: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", ErrNetwork{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound{Name: name}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", ErrInvalidResponse{Msg: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, url)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrInvalidResponse{Msg: err.Error()}
	}
	return string(body), nil
}
