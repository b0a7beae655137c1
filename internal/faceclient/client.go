package faceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// EnrollResult contains the face service's response to a gallery enrollment.
type EnrollResult struct {
	StudentID string `json:"student_id"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
}

// Client calls the external face recognition service. Face detection and
// encoding live entirely behind this HTTP boundary; the backend only stores
// whether a student has been enrolled.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client. With skip enabled every call succeeds without
// touching the network, which keeps dev and test environments independent of
// the face service.
func New(baseURL string, skip bool) *Client {
	return &Client{
		BaseURL: baseURL,
		Skip:    skip,
		HTTP: &http.Client{
			Timeout: 30 * time.Second, // face processing can take time
		},
	}
}

// Health checks face service availability.
func (c *Client) Health(ctx context.Context) error {
	if c.Skip {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("face service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("face service unhealthy: %s", resp.Status)
	}
	return nil
}

// Enroll registers a student's photo in the recognition gallery.
func (c *Client) Enroll(ctx context.Context, studentID int64, photoURL, name string) (*EnrollResult, error) {
	id := strconv.FormatInt(studentID, 10)
	if c.Skip {
		return &EnrollResult{StudentID: id, Success: true, Message: "face enrolled (mock)"}, nil
	}
	if photoURL == "" {
		return nil, fmt.Errorf("photo url required")
	}

	payload := map[string]any{
		"student_id": id,
		"image_url":  photoURL,
	}
	if name != "" {
		payload["name"] = name
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/enroll", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("face service error %s: %s", resp.Status, string(bodyBytes))
	}

	var out EnrollResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// Remove deletes a student's gallery entry. Called when a student record is
// deleted so the face service does not keep matching a removed student.
func (c *Client) Remove(ctx context.Context, studentID int64) error {
	if c.Skip {
		return nil
	}

	url := fmt.Sprintf("%s/gallery/%d", c.BaseURL, studentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("face service error %s", resp.Status)
	}
	return nil
}
