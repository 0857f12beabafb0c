package aladhan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient()
	client.BaseURL = server.URL
	return client
}

func TestTimings_Success(t *testing.T) {
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/timings/28-02-2026") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("method") != "2" {
			t.Errorf("method = %q, want 2", q.Get("method"))
		}
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Error("missing coordinates")
		}
		w.Write([]byte(`{
			"code": 200,
			"status": "OK",
			"data": {
				"timings": {"Fajr": "05:17", "Sunrise": "06:48", "Dhuhr": "12:13",
				            "Asr": "15:02", "Maghrib": "17:39", "Isha": "19:10"},
				"meta": {"latitude": 51.5074, "longitude": -0.1278, "timezone": "Europe/London",
				         "method": {"id": 2, "name": "ISNA"}}
			}
		}`))
	})

	resp, err := client.Timings(context.Background(), date, 51.5074, -0.1278, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Timings.Fajr != "05:17" {
		t.Errorf("Fajr = %q, want 05:17", resp.Data.Timings.Fajr)
	}
	if resp.Data.Meta.Method.ID != 2 {
		t.Errorf("method id = %d, want 2", resp.Data.Meta.Method.ID)
	}
}

func TestTimings_PayloadError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 400, "status": "Bad Request"}`))
	})

	if _, err := client.Timings(context.Background(), time.Now(), 0, 0, 2); err == nil {
		t.Error("expected error for non-200 payload code")
	}
}

func TestTimings_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.Timings(context.Background(), time.Now(), 0, 0, 2); err == nil {
		t.Error("expected error for HTTP failure")
	}
}
