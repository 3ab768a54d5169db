package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func loadTestFixture(t *testing.T) listingsFixture {
	t.Helper()
	path := filepath.Join("testdata", "listings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var fixture listingsFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return fixture
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture["ebay"]) == 0 {
		t.Fatal("expected ebay listings in fixture")
	}
	if len(fixture["mercari"]) == 0 {
		t.Fatal("expected mercari listings in fixture")
	}
}

func TestListingsHandler_AllListings(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?platform=ebay", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp listingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Listings) != len(fixture["ebay"]) {
		t.Errorf("listings=%d, want %d", len(resp.Listings), len(fixture["ebay"]))
	}
}

func TestListingsHandler_QueryFilter(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?platform=ebay&q=switch+oled", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp listingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Listings) == 0 {
		t.Error("expected switch oled results")
	}
	if len(resp.Listings) >= len(fixture["ebay"]) {
		t.Error("expected filter to reduce results")
	}
	// Every returned listing should contain both words in its title.
	for _, raw := range resp.Listings {
		var lt listingTitle
		_ = json.Unmarshal(raw, &lt)
		if lt.Title == "" {
			t.Error("expected non-empty title")
		}
	}
}

func TestListingsHandler_Limit(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?platform=ebay&limit=2", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp listingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Listings) != 2 {
		t.Errorf("listings=%d, want 2", len(resp.Listings))
	}
}

func TestListingsHandler_UnknownPlatform(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?platform=craigslist", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListingsHandler_NoResults(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?platform=ebay&q=nonexistent_xyz_product", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp listingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Listings == nil {
		t.Error("expected empty array, got nil")
	}
	if len(resp.Listings) != 0 {
		t.Errorf("listings=%d, want 0", len(resp.Listings))
	}
}

func TestTrendsHandler_Directions(t *testing.T) {
	handler := trendsHandler(testLogger())

	tests := []struct {
		query string
		want  string
	}{
		{"nintendo+switch+oled", "stable"},
		{"vintage+game+boy+color", "up"},
		{"switch+console+broken+for+parts", "down"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/trends?q="+tt.query, http.NoBody)
		w := httptest.NewRecorder()

		handler(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
		}

		var resp trendResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Direction != tt.want {
			t.Errorf("q=%q direction=%s, want %s", tt.query, resp.Direction, tt.want)
		}
		if resp.Confidence <= 0 || resp.Confidence > 1 {
			t.Errorf("q=%q confidence=%f out of range", tt.query, resp.Confidence)
		}
		if len(resp.Factors) == 0 {
			t.Errorf("q=%q expected factors", tt.query)
		}
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
