package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestForwardResolvesPoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "test-token" {
			t.Errorf("access token not forwarded, query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"geometry":{"type":"Point","coordinates":[2.3522,48.8566]}}]}`))
	}))
	defer server.Close()

	g := NewMapboxGeocoderWithBaseURL("test-token", server.URL, time.Second)
	geom, err := g.Forward(context.Background(), "Paris, France")
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	if geom.Type != "Point" {
		t.Fatalf("expected Point geometry, got %q", geom.Type)
	}
	if geom.Coordinates[0] != 2.3522 || geom.Coordinates[1] != 48.8566 {
		t.Fatalf("unexpected coordinates: %v", geom.Coordinates)
	}
}

func TestForwardNoMatchIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	g := NewMapboxGeocoderWithBaseURL("test-token", server.URL, time.Second)
	if _, err := g.Forward(context.Background(), "nowhere at all"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestForwardServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewMapboxGeocoderWithBaseURL("test-token", server.URL, time.Second)
	if _, err := g.Forward(context.Background(), "Paris"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestForwardEmptyPlace(t *testing.T) {
	g := NewMapboxGeocoder("test-token", time.Second)
	if _, err := g.Forward(context.Background(), "   "); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
