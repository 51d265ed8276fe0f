package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage
	DBDriver        string // sqlite | postgres | memory
	DBDSN           string
	BanksDir        string // bundled question banks, seeded into an empty store
	SeedBanks       bool
	UpsertChunkSize int

	// Deep review
	LLMURL        string // OpenAI-compatible endpoint, e.g. "http://localhost:11434/v1"
	LLMModel      string
	LLMAPIKey     string // empty disables the LLM; reviews fall back to offline
	ReviewWorkers int

	// HTTP
	SessionSecret string
	CORSOrigins   []string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DBDriver:        strings.ToLower(getenvDefault("DB_DRIVER", "sqlite")),
		DBDSN:           getenvDefault("DB_DSN", ""),
		BanksDir:        getenvDefault("BANKS_DIR", "data"),
		SeedBanks:       getenvBool("SEED_BANKS", true),
		UpsertChunkSize: getenvInt("UPSERT_CHUNK_SIZE", 50),
		LLMURL:          getenvDefault("LLM_URL", "https://api.openai.com/v1"),
		LLMModel:        getenvDefault("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		ReviewWorkers:   getenvInt("REVIEW_WORKERS", 2),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		CORSOrigins:     getenvCSV("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvCSV(k, fallback string) []string {
	v := getenvDefault(k, fallback)
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
