package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client resolves a visitor IP to a country code. Used only to pick the
// default storefront language, so every failure degrades to "".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New() *Client {
	return &Client{
		baseURL:    "http://ip-api.com/json",
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}
}

type lookupResp struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
}

func (c *Client) CountryFor(ctx context.Context, ip string) string {
	if ip == "" {
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s?fields=status,countryCode", c.baseURL, ip), nil)
	if err != nil {
		return ""
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return ""
	}
	var lr lookupResp
	if err := json.NewDecoder(res.Body).Decode(&lr); err != nil {
		return ""
	}
	if lr.Status != "success" {
		return ""
	}
	return lr.CountryCode
}
