package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string // kosong = pakai penyimpanan memori (mode demo/dev)
	CORSOrigins string

	// Kunci API Gemini untuk fitur AI Insight; kosong = fitur degradasi
	GeminiAPIKey  string
	GeminiBaseURL string

	// Kebijakan stok minus: transaksi OUT boleh membuat stok negatif atau tidak
	AllowNegativeStock bool
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:        getEnv("DATABASE_DSN", ""),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:      getEnv("GEMINI_API_BASE_URL", "https://generativelanguage.googleapis.com"),
		AllowNegativeStock: getEnvBool("ALLOW_NEGATIVE_STOCK", true),
	}

	if cfg.DatabaseDSN == "" {
		log.Println("[WARN] DATABASE_DSN kosong, data disimpan di memori dan hilang saat restart. Set DATABASE_DSN untuk production.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("[WARN] GEMINI_API_KEY belum diset, fitur AI Insight akan mengembalikan pesan tidak tersedia.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS memakai nilai default, untuk production definisikan domain sendiri.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}
