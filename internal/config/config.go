package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	DBName   string
	Port     string
	GinMode  string

	CORSOrigins []string

	// Redis (asynq queue + structure mapping cache)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// S3 blob storage
	S3Bucket string
	S3Region string

	// Pinecone vector index
	PineconeHost   string
	PineconeAPIKey string

	// Gemini
	GeminiAPIKey    string
	EmbeddingModel  string
	GenerationModel string
	GeminiTier      string

	// Chunking / retrieval
	MaxChunkTokens int
	TopK           int
	UpsertBatch    int

	// Upload limits
	MaxFileSize  int64
	AllowedTypes []string

	// Indexing
	IndexTimeoutSec int
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017/techdocs_rag"),
		DBName:   getEnv("DB_NAME", "techdocs_rag"),
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		S3Bucket: getEnv("S3_BUCKET", ""),
		S3Region: getEnv("S3_REGION", "us-east-1"),

		PineconeHost:   getEnv("PINECONE_HOST", ""),
		PineconeAPIKey: getEnv("PINECONE_API_KEY", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		GenerationModel: getEnv("GENERATION_MODEL", "gemini-2.0-flash"),
		GeminiTier:      getEnv("GEMINI_TIER", "free"),

		MaxChunkTokens: getEnvInt("MAX_CHUNK_TOKENS", 8191),
		TopK:           getEnvInt("SEARCH_TOP_K", 3),
		UpsertBatch:    getEnvInt("UPSERT_BATCH_SIZE", 100),

		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 104857600), // 100MB
		AllowedTypes: strings.Split(getEnv("ALLOWED_FILE_TYPES", "application/pdf"), ","),

		IndexTimeoutSec: getEnvInt("INDEX_TIMEOUT_SECONDS", 600),
	}

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required - set it in .env file")
	}

	if cfg.PineconeHost == "" || cfg.PineconeAPIKey == "" {
		return nil, fmt.Errorf("PINECONE_HOST and PINECONE_API_KEY are required - set them in .env file")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
