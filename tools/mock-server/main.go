// Package main implements a mock scraper-API server for local development.
// It serves canned listing records from JSON fixtures per platform, plus a
// trend endpoint, so the pricing engine can run end to end without hitting
// real marketplaces.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// listingsFixture maps platform name to its raw listing records.
type listingsFixture map[string][]json.RawMessage

type listingsResponse struct {
	Listings []json.RawMessage `json:"listings"`
}

type trendResponse struct {
	Direction  string   `json:"direction"`
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors"`
}

type listingTitle struct {
	Title string `json:"title"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/listings.json", "path to listings fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	for platform, records := range fixture {
		logger.Info("loaded fixture", "platform", platform, "listings", len(records))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /listings", listingsHandler(logger, fixture))
	mux.HandleFunc("GET /trends", trendsHandler(logger))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock scraper server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (listingsFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fixture listingsFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return fixture, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func listingsHandler(logger *slog.Logger, fixture listingsFixture) http.HandlerFunc {
	// Pre-parse titles per platform for filtering.
	type indexedListing struct {
		raw   json.RawMessage
		title string
	}
	indexed := make(map[string][]indexedListing, len(fixture))
	for platform, records := range fixture {
		items := make([]indexedListing, 0, len(records))
		for _, raw := range records {
			var lt listingTitle
			//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
			json.Unmarshal(raw, &lt)
			items = append(items, indexedListing{raw: raw, title: strings.ToLower(lt.Title)})
		}
		indexed[platform] = items
	}

	return func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("platform")
		q := strings.ToLower(r.URL.Query().Get("q"))

		limit := 25
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		items, ok := indexed[platform]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error": "unknown platform: " + platform,
			})
			return
		}

		// Match listings whose title contains every query word.
		words := strings.Fields(q)
		matched := make([]json.RawMessage, 0, len(items))
		for _, item := range items {
			if containsAll(item.title, words) {
				matched = append(matched, item.raw)
			}
		}

		if len(matched) > limit {
			matched = matched[:limit]
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(listingsResponse{Listings: matched})
		logger.Info("listings", "platform", platform, "query", q, "returned", len(matched), "limit", limit)
	}
}

func containsAll(title string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(title, word) {
			return false
		}
	}
	return true
}

// trendsHandler returns a deterministic trend signal derived from the query
// so repeated local runs are reproducible: queries mentioning "vintage" or
// "retro" trend up, "broken" or "parts" trend down, everything else stable.
func trendsHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))

		resp := trendResponse{
			Direction:  "stable",
			Confidence: 0.6,
			Factors:    []string{"steady demand"},
		}
		switch {
		case strings.Contains(q, "vintage"), strings.Contains(q, "retro"):
			resp = trendResponse{
				Direction:  "up",
				Confidence: 0.8,
				Factors:    []string{"collector interest", "seasonal demand"},
			}
		case strings.Contains(q, "broken"), strings.Contains(q, "parts"):
			resp = trendResponse{
				Direction:  "down",
				Confidence: 0.75,
				Factors:    []string{"oversupply", "repair cost"},
			}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("trends", "query", q, "direction", resp.Direction)
	}
}
