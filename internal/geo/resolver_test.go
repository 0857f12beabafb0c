package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miqat-labs/miqat/internal/model"
)

type stubSensor struct {
	coord model.Coordinate
	err   error
}

func (s *stubSensor) Locate(context.Context) (model.Coordinate, error) {
	return s.coord, s.err
}

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *NominatimClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewNominatimClient()
	client.BaseURL = server.URL
	return client
}

func TestResolveFromSensor_Success(t *testing.T) {
	sensor := &stubSensor{coord: model.Coordinate{Latitude: 40.7128, Longitude: -74.006}}
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"lat": "40.7128", "lon": "-74.0060", "display_name": "New York, USA"}`))
	})

	place, err := NewResolver(sensor, geocoder).ResolveFromSensor(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Label != "New York, USA" {
		t.Errorf("label = %q, want reverse-geocoded name", place.Label)
	}
	if place.Coordinate != sensor.coord {
		t.Errorf("coordinate = %v, want %v", place.Coordinate, sensor.coord)
	}
}

// Reverse geocoding is best-effort: its failure degrades the label but
// keeps the coordinate.
func TestResolveFromSensor_ReverseFailureUsesNumericLabel(t *testing.T) {
	sensor := &stubSensor{coord: model.Coordinate{Latitude: 40.7128, Longitude: -74.006}}
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	place, err := NewResolver(sensor, geocoder).ResolveFromSensor(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Label != "lat: 40.7128, lon: -74.0060" {
		t.Errorf("label = %q, want numeric fallback", place.Label)
	}
}

func TestResolveFromSensor_SensorFailure(t *testing.T) {
	sensor := &stubSensor{err: errors.New("permission denied")}
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("geocoder should not be called when the sensor fails")
	})

	_, err := NewResolver(sensor, geocoder).ResolveFromSensor(context.Background())
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Errorf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestResolveFromQuery_Success(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "istanbul" {
			t.Errorf("query = %q, want istanbul", got)
		}
		w.Write([]byte(`[
			{"lat": "41.0082", "lon": "28.9784", "display_name": "Istanbul, Turkey"},
			{"lat": "32.8", "lon": "-97.1", "display_name": "Istanbul Grill, Texas"}
		]`))
	})

	place, err := NewResolver(&stubSensor{}, geocoder).ResolveFromQuery(context.Background(), "istanbul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First-ranked match wins, and its canonical name (not the raw query)
	// becomes the label.
	if place.Label != "Istanbul, Turkey" {
		t.Errorf("label = %q, want first match display name", place.Label)
	}
	if place.Coordinate.Latitude != 41.0082 {
		t.Errorf("latitude = %f, want 41.0082", place.Coordinate.Latitude)
	}
}

func TestResolveFromQuery_NoMatch(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := NewResolver(&stubSensor{}, geocoder).ResolveFromQuery(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestResolveFromQuery_ServiceError(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := NewResolver(&stubSensor{}, geocoder).ResolveFromQuery(context.Background(), "istanbul")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestResolveFromQuery_EmptyText(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("geocoder should not be called for an empty query")
	})

	_, err := NewResolver(&stubSensor{}, geocoder).ResolveFromQuery(context.Background(), "   ")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}
