package marketdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-pricing-service/internal/marketdata"
	domain "product-pricing-service/pkg/types"
)

func TestScrapeClient_Fetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        marketdata.FetchRequest
		handler    http.HandlerFunc
		wantErr    bool
		errContain string
		wantCount  int
	}{
		{
			name: "successful fetch with records",
			req:  marketdata.FetchRequest{Query: "nintendo switch oled", Limit: 10},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "secret-key", r.Header.Get("X-API-Key"))
				assert.Equal(t, "ebay", r.URL.Query().Get("platform"))
				assert.Equal(t, "nintendo switch oled", r.URL.Query().Get("q"))
				assert.Equal(t, "10", r.URL.Query().Get("limit"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"listings": [
						{"title": "Switch OLED", "price": "$250.00"},
						{"title": "Switch OLED bundle", "price": 280}
					]
				}`))
			},
			wantCount: 2,
		},
		{
			name: "empty result set",
			req:  marketdata.FetchRequest{Query: "nothing"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				// Zero limit falls back to the default.
				assert.Equal(t, "25", r.URL.Query().Get("limit"))
				_, _ = w.Write([]byte(`{"listings": []}`))
			},
			wantCount: 0,
		},
		{
			name: "server error surfaces status",
			req:  marketdata.FetchRequest{Query: "x"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`upstream scraper down`))
			},
			wantErr:    true,
			errContain: "status 502",
		},
		{
			name: "malformed JSON",
			req:  marketdata.FetchRequest{Query: "x"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr:    true,
			errContain: "parsing scrape response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := marketdata.NewScrapeClient(
				domain.PlatformEbay,
				srv.URL,
				marketdata.WithAPIKey("secret-key"),
			)

			records, err := c.Fetch(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}

			require.NoError(t, err)
			assert.Len(t, records, tt.wantCount)
		})
	}
}

func TestScrapeClient_QuotaExceeded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"listings": []}`))
	}))
	defer srv.Close()

	c := marketdata.NewScrapeClient(
		domain.PlatformEbay,
		srv.URL,
		marketdata.WithQuotaLimiter(marketdata.NewQuotaLimiter(1000, 10, 1)),
	)

	_, err := c.Fetch(context.Background(), marketdata.FetchRequest{Query: "x"})
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), marketdata.FetchRequest{Query: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, marketdata.ErrDailyQuotaExceeded)
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	src := &marketdata.StaticSource{
		Name:    domain.PlatformMercari,
		Records: []marketdata.RawListing{{"title": "a", "price": 10.0}},
	}

	assert.Equal(t, domain.PlatformMercari, src.Platform())

	records, err := src.Fetch(context.Background(), marketdata.FetchRequest{Query: "a"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
