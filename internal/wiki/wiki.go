// Package wiki looks up short topic summaries through the Wikipedia REST
// page-summary endpoint.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 8 * time.Second}
	}
	return &Client{baseURL: defaultBaseURL, http: httpc}
}

// Summary returns the extract paragraph for topic. The topic is taken as
// dictated; Wikipedia's own redirect handling covers casing and synonyms.
func (c *Client) Summary(ctx context.Context, topic string) (string, error) {
	title := url.PathEscape(strings.ReplaceAll(topic, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+title, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary request: status %d", resp.StatusCode)
	}

	var body struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}
	if body.Extract == "" {
		return "", errors.New("empty summary")
	}
	return body.Extract, nil
}
