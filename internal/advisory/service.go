package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"opname-backend/internal/models"

	"github.com/go-resty/resty/v2"
)

const geminiModel = "gemini-2.5-flash"

// Analysis adalah hasil analisis stok. Endpoint ini tidak pernah gagal:
// kalau API key kosong atau panggilan AI bermasalah, isinya fallback tetap.
type Analysis struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Anomalies       []string `json:"anomalies"`
}

var (
	notConfigured = Analysis{
		Summary:         "Fitur analisis AI belum dikonfigurasi. Set GEMINI_API_KEY untuk mengaktifkannya.",
		Recommendations: []string{},
		Anomalies:       []string{},
	}
	unavailable = Analysis{
		Summary:         "Gagal melakukan analisis AI saat ini. Silakan coba lagi nanti.",
		Recommendations: []string{},
		Anomalies:       []string{},
	}
)

type Service struct {
	client *resty.Client
	apiKey string
}

func NewService(baseURL, apiKey string) *Service {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	return &Service{client: client, apiKey: apiKey}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze meminta ringkasan kondisi stok ke Gemini. Selalu mengembalikan
// Analysis terisi; tidak ada jalur error keluar.
func (s *Service) Analyze(ctx context.Context, items []models.Item, txs []models.Transaction) Analysis {
	if s.apiKey == "" {
		return notConfigured
	}

	prompt, err := buildPrompt(items, txs)
	if err != nil {
		return unavailable
	}

	var out generateResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(generateRequest{
			Contents:         []content{{Parts: []part{{Text: prompt}}}},
			GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", geminiModel))
	if err != nil || resp.IsError() {
		return unavailable
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return unavailable
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &analysis); err != nil {
		return unavailable
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	if analysis.Anomalies == nil {
		analysis.Anomalies = []string{}
	}
	return analysis
}

func buildPrompt(items []models.Item, txs []models.Transaction) (string, error) {
	// maksimal 50 transaksi terbaru supaya prompt tidak membengkak
	if len(txs) > 50 {
		txs = txs[:50]
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	txsJSON, err := json.Marshal(txs)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Anda adalah analis inventaris gudang. Analisis data stok berikut dan berikan jawaban dalam JSON dengan struktur {"summary": string, "recommendations": string[], "anomalies": string[]}. Jawab dalam Bahasa Indonesia.

Data barang:
%s

Transaksi terbaru:
%s`, itemsJSON, txsJSON), nil
}
