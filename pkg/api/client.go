package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// Client talks to the HomeScout backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new backend API client.
func NewClient(cfg *model.Config, logger *log.Logger) *Client {
	timeout := time.Duration(cfg.BackendTimeout) * time.Second
	return &Client{
		baseURL:    cfg.BackendURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// doRequest performs an HTTP request with common headers applied.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// doJSON performs a request and decodes a 2xx JSON response into out.
// Passing a nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		c.logger.Error(ctx, "Backend request failed", log.Fields{"method": method, "path": path, "error": err})
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(bodyBytes))
		c.logger.Error(ctx, "Backend returned error response", log.Fields{"method": method, "path": path, "status": resp.StatusCode})
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error(ctx, "Failed to decode backend response", log.Fields{"method": method, "path": path, "error": err})
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// PropertyList fetches all backend properties, normalized for the merged view.
func (c *Client) PropertyList(ctx context.Context) ([]model.Property, error) {
	var raws []RemoteProperty
	if err := c.doJSON(ctx, http.MethodGet, "/properties", nil, &raws); err != nil {
		return nil, err
	}
	c.logger.Debug(ctx, "Fetched backend properties", log.Fields{"count": len(raws)})
	return normalizeRemoteProperties(raws), nil
}

// PropertyGet fetches a single backend property by its remote id.
func (c *Client) PropertyGet(ctx context.Context, remoteID string) (*model.Property, error) {
	var raw RemoteProperty
	if err := c.doJSON(ctx, http.MethodGet, "/properties/"+url.PathEscape(remoteID), nil, &raw); err != nil {
		return nil, err
	}
	p := NormalizeRemoteProperty(raw)
	return &p, nil
}

// PropertySearch runs the backend text search.
func (c *Client) PropertySearch(ctx context.Context, query string) ([]model.Property, error) {
	var raws []RemoteProperty
	if err := c.doJSON(ctx, http.MethodGet, "/properties/search/"+url.PathEscape(query), nil, &raws); err != nil {
		return nil, err
	}
	return normalizeRemoteProperties(raws), nil
}

// likedResponse is the wire shape of the liked-properties endpoints.
type likedResponse struct {
	Liked []string `json:"liked"`
}

// LikedGet fetches the authoritative liked set for a user.
func (c *Client) LikedGet(ctx context.Context, userID string) ([]string, error) {
	var resp likedResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/liked", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Liked == nil {
		return []string{}, nil
	}
	return resp.Liked, nil
}

// LikedToggle toggles a property in the user's liked set and returns the
// server's authoritative set.
func (c *Client) LikedToggle(ctx context.Context, userID, propertyID string) ([]string, error) {
	payload := map[string]string{"propertyId": propertyID}
	var resp likedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/liked/toggle", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Liked == nil {
		return []string{}, nil
	}
	return resp.Liked, nil
}

// LikedUpdate replaces the user's liked set wholesale.
func (c *Client) LikedUpdate(ctx context.Context, userID string, liked []string) error {
	payload := likedResponse{Liked: liked}
	return c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/liked", payload, nil)
}

// InquiryCreate submits a contact/enquiry form.
func (c *Client) InquiryCreate(ctx context.Context, inquiry model.Inquiry) error {
	return c.doJSON(ctx, http.MethodPost, "/inquiries", inquiry, nil)
}
