package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"opname-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeWithoutAPIKey(t *testing.T) {
	svc := NewService("http://localhost", "")
	got := svc.Analyze(context.Background(), nil, nil)
	assert.Contains(t, got.Summary, "belum dikonfigurasi")
	assert.NotNil(t, got.Recommendations)
	assert.NotNil(t, got.Anomalies)
}

func TestAnalyzeParsesGeminiResponse(t *testing.T) {
	inner, err := json.Marshal(Analysis{
		Summary:         "Stok kertas menipis",
		Recommendations: []string{"Segera pesan ulang Kertas A4"},
		Anomalies:       []string{"Pemakaian tinta naik 3x minggu ini"},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		assert.Equal(t, "rahasia", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": string(inner)}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, "rahasia")
	got := svc.Analyze(context.Background(), []models.Item{{ID: "item-1", Name: "Kertas A4"}}, nil)
	assert.Equal(t, "Stok kertas menipis", got.Summary)
	require.Len(t, got.Recommendations, 1)
	require.Len(t, got.Anomalies, 1)
}

func TestAnalyzeFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, "rahasia")
	got := svc.Analyze(context.Background(), nil, nil)
	assert.Contains(t, got.Summary, "Gagal melakukan analisis AI")
}

func TestAnalyzeFallsBackOnGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "bukan json"}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, "rahasia")
	got := svc.Analyze(context.Background(), nil, nil)
	assert.Contains(t, got.Summary, "Gagal melakukan analisis AI")
}
