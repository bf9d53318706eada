package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/diversifier/internal/config"
	"github.com/aristath/diversifier/internal/di"
	"github.com/aristath/diversifier/internal/utils"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:               8010,
		DevMode:            true,
		MaxPositionPercent: 10,
		Scoring:            config.ScoringConfig{AssetClassPoints: 25, RegionPoints: 25, SectorPoints: 25, ConcentrationPoints: 25},
		ExchangeSuffixes:   utils.DefaultExchangeSuffixes,
	}
	container, err := di.Wire(cfg, zerolog.Nop())
	require.NoError(t, err)

	return New(Config{
		Log:       zerolog.Nop(),
		Config:    cfg,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Container: container,
	})
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "diversifier", response["service"])
	assert.Greater(t, response["compositions"], 0.0)
}

func TestServer_ScoreAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	body := `{"positions":[{"identifier":"VWCE","market_value":10000}],"use_look_through":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/diversification/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 59.0, data["total_score"])

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	metrics := w.Body.String()
	assert.Contains(t, metrics, `diversifier_scores_total{view="look_through"} 1`)
	assert.Contains(t, metrics, `route="/api/diversification/score"`)
}

func TestServer_CurrentAllocation(t *testing.T) {
	srv := newTestServer(t)

	body := `{"positions":[{"identifier":"VWCE.DE","market_value":8000},{"identifier":"ZZZZ","market_value":2000}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/allocation/current", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var response struct {
		TotalValue float64 `json:"total_value"`
		Region     struct {
			Buckets []struct {
				Label string `json:"label"`
			} `json:"buckets"`
		} `json:"region"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 10000.0, response.TotalValue)
	require.Len(t, response.Region.Buckets, 2)
	assert.Equal(t, "Global", response.Region.Buckets[0].Label)
	assert.Equal(t, "Unclassified", response.Region.Buckets[1].Label)
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
