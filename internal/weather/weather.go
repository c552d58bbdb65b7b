// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

var ErrNoAPIKey = errors.New("weather api key not configured")

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New builds a client around httpc, which may be proxy-backed; nil gets a
// plain client with the 8s budget one spoken turn can afford.
func New(apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 8 * time.Second}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    httpc,
	}
}

type report struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
}

// Current returns a spoken-ready description of the weather in city.
func (c *Client) Current(ctx context.Context, city string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	q := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather request: status %d", resp.StatusCode)
	}

	var r report
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode weather: %w", err)
	}
	if len(r.Weather) == 0 {
		return "", errors.New("weather response missing conditions")
	}

	return fmt.Sprintf("Weather in %s: %s. Temperature %.1f degrees, feels like %.1f degrees.",
		city, r.Weather[0].Description, r.Main.Temp, r.Main.FeelsLike), nil
}
