package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// resendClient talks to the Resend transactional email API.
type resendClient struct {
	apiKey     string
	httpClient *http.Client
}

func newResendClient(apiKey string) *resendClient {
	return &resendClient{apiKey: apiKey, httpClient: &http.Client{Timeout: 10 * time.Second}}
}

type resendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResp struct {
	ID string `json:"id"`
}

func (c *resendClient) Send(ctx context.Context, from, to, subject, html string) error {
	if c.apiKey == "" {
		return errors.New("resend api key missing (RESEND_API_KEY)")
	}
	buf, err := json.Marshal(resendReq{From: from, To: []string{to}, Subject: subject, HTML: html})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		var apiErr struct {
			Message string `json:"message"`
			Name    string `json:"name"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("resend status %d: %s", res.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend status %d: %s", res.StatusCode, string(body))
	}
	var rr resendResp
	if err := json.NewDecoder(res.Body).Decode(&rr); err != nil {
		return err
	}
	if rr.ID == "" {
		return errors.New("resend response incomplete")
	}
	return nil
}
