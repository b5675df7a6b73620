// Package weather provides a minimal client for the OpenWeather current
// conditions API.
package weather

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

// DefaultBaseURL is the OpenWeather current weather endpoint.
const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"

// ErrMissingAPIKey is returned when a lookup is attempted without a key.
var ErrMissingAPIKey = errors.New("weather: openweather key is required")

// ErrEmptyCity is returned when the city name is blank.
var ErrEmptyCity = errors.New("weather: city name is required")

// Provider is the capability the server's get_weather tool depends on.
type Provider interface {
	Current(ctx context.Context, city string) (*Report, error)
}

// Report is a normalized view of current conditions for one city.
type Report struct {
	City       string  `json:"city"`
	Conditions string  `json:"conditions"`
	TempC      float64 `json:"temp_c"`
	FeelsLikeC float64 `json:"feels_like_c"`
	Humidity   int     `json:"humidity"`
	WindKph    float64 `json:"wind_kph"`
}

// Describe renders the report as a single human-readable line.
func (r *Report) Describe() string {
	return fmt.Sprintf("%s: %s, %.1f°C (feels like %.1f°C), humidity %d%%, wind %.1f km/h",
		r.City, r.Conditions, r.TempC, r.FeelsLikeC, r.Humidity, r.WindKph)
}

// Client is a minimal HTTP client for OpenWeather.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New returns a new client. If httpClient is nil, a default with 15s timeout is used.
func New(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{BaseURL: DefaultBaseURL, APIKey: apiKey, HTTP: httpClient}
}

type openWeatherResponse struct {
	Name    string `json:"name"`
	Cod     any    `json:"cod"`
	Message string `json:"message"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s with units=metric
	} `json:"wind"`
}

// Current fetches current conditions for city. Single attempt, no retry.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(city) == "" {
		return nil, ErrEmptyCity
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.APIKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var body openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if body.Message != "" {
			return nil, fmt.Errorf("openweather error for %s: %s", city, body.Message)
		}
		return nil, fmt.Errorf("openweather status %d", resp.StatusCode)
	}

	conditions := ""
	if len(body.Weather) > 0 {
		conditions = body.Weather[0].Description
		if conditions == "" {
			conditions = body.Weather[0].Main
		}
	}

	name := body.Name
	if name == "" {
		name = city
	}

	return &Report{
		City:       name,
		Conditions: conditions,
		TempC:      body.Main.Temp,
		FeelsLikeC: body.Main.FeelsLike,
		Humidity:   body.Main.Humidity,
		WindKph:    body.Wind.Speed * 3.6,
	}, nil
}
