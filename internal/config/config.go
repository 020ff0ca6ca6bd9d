package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Chunking  ChunkingConfig
	Retrieval RetrievalConfig
	History   HistoryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	// Empty means the API is open to anything that can reach the port.
	APITokenSecret string
	OtelEnabled    bool
	OtelEndpoint   string
	IngestTopic    string
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "openai"
	LLMBaseURL        string
	LLMModel          string
	EmbeddingProvider string // "ollama" or "openai"
	EmbeddingBaseURL  string
	EmbeddingModel    string
	APIKey            string // only sent to openai-compatible servers
	Timeout           time.Duration
	MaxRetries        int
	RetryBaseDelay    time.Duration
	StatusCacheTTL    time.Duration
}

// ChunkingConfig holds the two splitters: small chunks for retrieval, larger
// ones for fact extraction.
type ChunkingConfig struct {
	EmbedChunkSize int
	EmbedOverlap   int
	FactChunkSize  int
	FactOverlap    int
}

type RetrievalConfig struct {
	TopK     int
	MinScore float64
}

type HistoryConfig struct {
	MaxVersions     int
	MaxAge          time.Duration
	MaxTotalSize    int
	CleanupInterval time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			APITokenSecret:     getEnv("API_TOKEN_SECRET", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			IngestTopic:        getEnv("INGEST_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", "http://localhost:11434"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			APIKey:            getEnv("LLM_API_KEY", ""),
			Timeout:           time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
			MaxRetries:        getEnvAsInt("LLM_MAX_RETRIES", 2),
			RetryBaseDelay:    getEnvAsDuration("LLM_RETRY_BASE_DELAY", 500*time.Millisecond),
			StatusCacheTTL:    getEnvAsDuration("LLM_STATUS_CACHE_TTL", 10*time.Second),
		},
		Chunking: ChunkingConfig{
			EmbedChunkSize: getEnvAsInt("EMBED_CHUNK_SIZE", 1000),
			EmbedOverlap:   getEnvAsInt("EMBED_CHUNK_OVERLAP", 200),
			FactChunkSize:  getEnvAsInt("FACT_CHUNK_SIZE", 4000),
			FactOverlap:    getEnvAsInt("FACT_CHUNK_OVERLAP", 200),
		},
		Retrieval: RetrievalConfig{
			TopK:     getEnvAsInt("RETRIEVAL_TOP_K", 5),
			MinScore: getEnvAsFloat("RETRIEVAL_MIN_SCORE", 0),
		},
		History: HistoryConfig{
			MaxVersions:     getEnvAsInt("HISTORY_MAX_VERSIONS", 10),
			MaxAge:          getEnvAsDuration("HISTORY_MAX_AGE", 24*time.Hour),
			MaxTotalSize:    getEnvAsInt("HISTORY_MAX_TOTAL_SIZE", 50*1024*1024),
			CleanupInterval: getEnvAsDuration("HISTORY_CLEANUP_INTERVAL", time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings such as "90s" or "1h".
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
