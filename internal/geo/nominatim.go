package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/miqat-labs/miqat/internal/model"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// Match is one ranked result of a forward geocode.
type Match struct {
	Coordinate  model.Coordinate
	DisplayName string
}

// Geocoder translates between free text and coordinates.
type Geocoder interface {
	Forward(ctx context.Context, query string) ([]Match, error)
	Reverse(ctx context.Context, coord model.Coordinate) (string, error)
}

// nominatimResult is one entry of a Nominatim response. Nominatim encodes
// coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimClient talks to a Nominatim-compatible geocoding endpoint.
type NominatimClient struct {
	httpClient *http.Client
	// BaseURL is exported for testing with httptest.
	BaseURL string
}

// NewNominatimClient creates a geocoding client with sensible defaults.
func NewNominatimClient() *NominatimClient {
	return &NominatimClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultNominatimURL,
	}
}

// Forward geocodes free text to ranked matches. An empty result slice means
// the service found nothing for the query.
func (c *NominatimClient) Forward(ctx context.Context, query string) ([]Match, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")

	var results []nominatimResult
	if err := c.get(ctx, fmt.Sprintf("%s/search?%s", c.BaseURL, params.Encode()), &results); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		matches = append(matches, Match{
			Coordinate:  model.Coordinate{Latitude: lat, Longitude: lon},
			DisplayName: r.DisplayName,
		})
	}
	return matches, nil
}

// Reverse resolves a coordinate to the service's display name.
func (c *NominatimClient) Reverse(ctx context.Context, coord model.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("format", "json")

	var result nominatimResult
	if err := c.get(ctx, fmt.Sprintf("%s/reverse?%s", c.BaseURL, params.Encode()), &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("reverse geocode returned no display name")
	}
	return result.DisplayName, nil
}

func (c *NominatimClient) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "miqat/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return nil
}
