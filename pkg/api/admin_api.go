package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// AdminLogin checks the admin password against the backend. A rejected
// password is a normal false return, not an error.
func (c *Client) AdminLogin(ctx context.Context, password string) (bool, error) {
	payload := map[string]string{"password": password}
	data, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/login", bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}
}

// AdminStats fetches the dashboard aggregates.
func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminPropertyList fetches all properties through the admin endpoint.
func (c *Client) AdminPropertyList(ctx context.Context) ([]model.Property, error) {
	var raws []RemoteProperty
	if err := c.doJSON(ctx, http.MethodGet, "/admin/properties", nil, &raws); err != nil {
		return nil, err
	}
	return normalizeRemoteProperties(raws), nil
}

// AdminPropertyCreate creates a property. The payload travels as a JSON part
// of a multipart form alongside the image files.
func (c *Client) AdminPropertyCreate(ctx context.Context, property model.Property, imagePaths []string) (*model.Property, error) {
	var raw RemoteProperty
	if err := c.doMultipart(ctx, http.MethodPost, "/admin/properties", property, imagePaths, &raw); err != nil {
		return nil, err
	}
	p := NormalizeRemoteProperty(raw)
	return &p, nil
}

// AdminPropertyUpdate updates a property by its remote id.
func (c *Client) AdminPropertyUpdate(ctx context.Context, remoteID string, property model.Property, imagePaths []string) error {
	return c.doMultipart(ctx, http.MethodPut, "/admin/properties/"+url.PathEscape(remoteID), property, imagePaths, nil)
}

// AdminPropertyDelete deletes a property by its remote id.
func (c *Client) AdminPropertyDelete(ctx context.Context, remoteID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/properties/"+url.PathEscape(remoteID), nil, nil)
}

// AdminInquiryList fetches all inquiries.
func (c *Client) AdminInquiryList(ctx context.Context) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	if err := c.doJSON(ctx, http.MethodGet, "/admin/inquiries", nil, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

// AdminInquiryStatus updates the status of one inquiry.
func (c *Client) AdminInquiryStatus(ctx context.Context, inquiryID, status string) error {
	payload := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPatch, "/admin/inquiries/"+url.PathEscape(inquiryID), payload, nil)
}

// uploadResponse is the wire shape of the standalone upload endpoint.
type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends a single image file and returns its served URL.
func (c *Client) Upload(ctx context.Context, filePath string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := attachImageFile(writer, filePath); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	var resp uploadResponse
	if err := c.doForm(ctx, http.MethodPost, "/upload", &buf, writer.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// doMultipart sends a multipart form with a "payload" JSON part and one
// "images" part per file, decoding a 2xx JSON response into out when non-nil.
func (c *Client) doMultipart(ctx context.Context, method, path string, property model.Property, imagePaths []string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	payload, err := json.Marshal(property)
	if err != nil {
		return fmt.Errorf("failed to marshal property payload: %w", err)
	}
	if err := writer.WriteField("payload", string(payload)); err != nil {
		return fmt.Errorf("failed to write payload field: %w", err)
	}

	for _, imagePath := range imagePaths {
		if err := attachImageFile(writer, imagePath); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	return c.doForm(ctx, method, path, &buf, writer.FormDataContentType(), out)
}

// doForm performs a request with a prebuilt form body and content type.
func (c *Client) doForm(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
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
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// attachImageFile adds one file to the form under the "images" field.
func attachImageFile(writer *multipart.Writer, imagePath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image file '%s': %w", imagePath, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("images", filepath.Base(imagePath))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy image file '%s': %w", imagePath, err)
	}
	return nil
}
