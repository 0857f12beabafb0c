package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/miqat-labs/miqat/internal/model"
)

// Sensor is a one-shot platform location capability. Implementations block
// until the capability responds or errors; no extra timeout is imposed here.
type Sensor interface {
	Locate(ctx context.Context) (model.Coordinate, error)
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPSensor approximates the device position from its public IP address.
// The free ip-api.com service needs no API key.
type IPSensor struct {
	httpClient *http.Client
	// URL is exported for testing with httptest.
	URL string
}

// NewIPSensor creates an IPSensor with sensible defaults.
func NewIPSensor() *IPSensor {
	return &IPSensor{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		URL:        "http://ip-api.com/json/?fields=status,message,lat,lon",
	}
}

// Locate performs one geolocation request and returns the coordinate.
func (s *IPSensor) Locate(ctx context.Context) (model.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("geolocation request failed: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Coordinate{}, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return model.Coordinate{}, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	return model.Coordinate{Latitude: result.Lat, Longitude: result.Lon}, nil
}
