package ig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com"

// Client talks to the IG messaging API (via FB Graph). One outbound call
// per operation, no retry: the caller decides what to do with a failure.
type Client struct {
	HTTP       *http.Client
	BaseURL    string // overridable for tests
	APIVersion string // e.g. v21.0
	APIToken   string // page access token
}

func NewClient(apiToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    defaultBaseURL,
		APIVersion: "v21.0",
		APIToken:   apiToken,
	}
}

// graphError is the error envelope Graph returns on non-2xx responses.
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// ReplyComment posts a public reply under an existing comment.
func (c *Client) ReplyComment(ctx context.Context, commentID, message string) error {
	url := fmt.Sprintf("%s/%s/%s/replies", c.BaseURL, c.APIVersion, commentID)
	payload := map[string]string{
		"message":      message,
		"access_token": c.APIToken,
	}
	if err := c.post(ctx, url, payload); err != nil {
		return fmt.Errorf("reply comment %s: %w", commentID, err)
	}
	return nil
}

// SendDM sends a text direct message to an IG user.
func (c *Client) SendDM(ctx context.Context, recipientID, message string) error {
	url := fmt.Sprintf("%s/%s/me/messages", c.BaseURL, c.APIVersion)
	payload := map[string]any{
		"recipient":    map[string]string{"id": recipientID},
		"message":      map[string]string{"text": message},
		"access_token": c.APIToken,
	}
	if err := c.post(ctx, url, payload); err != nil {
		return fmt.Errorf("send dm to %s: %w", recipientID, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// Surface the Graph error detail when the body carries one.
		var ge graphError
		if json.NewDecoder(resp.Body).Decode(&ge) == nil && ge.Error.Message != "" {
			return fmt.Errorf("graph api status %d: %s (code %d)", resp.StatusCode, ge.Error.Message, ge.Error.Code)
		}
		return fmt.Errorf("graph api status %d", resp.StatusCode)
	}
	return nil
}
