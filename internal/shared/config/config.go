package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// KV backends.
const (
	KVMemory   = "memory"
	KVSQLite   = "sqlite"
	KVPostgres = "postgres"
)

// Object store types.
const (
	StoreLocal = "local"
	StoreS3    = "s3"
	StoreNone  = "none"
)

// Config holds application configuration.
type Config struct {
	Port                string
	Env                 string
	CORSAllowOrigin     []string
	KVBackend           string
	SQLitePath          string
	DatabaseURL         string
	KVNamespace         string
	ObjectStoreType     string
	LocalStoreDir       string
	AWSRegion           string
	S3Bucket            string
	S3Prefix            string
	SSEKMSKeyID         string
	AnalyzeRateLimitRPS float64
	AnalyzeRateBurst    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	backend := normalizeKVBackend(getEnv("KV_BACKEND", ""), dbURL)

	if backend == KVPostgres && dbURL == "" {
		log.Printf("KV_BACKEND=postgres requires DATABASE_URL")
	}
	if env == "production" && backend == KVMemory {
		log.Printf("KV_BACKEND=memory in production: history is lost on restart")
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 env,
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		KVBackend:           backend,
		SQLitePath:          getEnv("SQLITE_PATH", "./data/prep.db"),
		DatabaseURL:         dbURL,
		KVNamespace:         getEnv("KV_NAMESPACE", "default"),
		ObjectStoreType:     normalizeStoreType(getEnv("OBJECT_STORE", StoreLocal)),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data/reports"),
		AWSRegion:           getEnv("AWS_REGION", ""),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:         getEnv("SSE_KMS_KEY_ID", ""),
		AnalyzeRateLimitRPS: getEnvFloat("RATE_LIMIT_ANALYZE_RPS", 1),
		AnalyzeRateBurst:    getEnvInt("RATE_LIMIT_ANALYZE_BURST", 5),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeKVBackend defaults to postgres when DATABASE_URL is set, else sqlite.
func normalizeKVBackend(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory", "mem":
		return KVMemory
	case "sqlite", "sqlite3":
		return KVSQLite
	case "postgres", "postgresql", "pg":
		return KVPostgres
	}
	if strings.TrimSpace(dbURL) != "" {
		return KVPostgres
	}
	return KVSQLite
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return StoreS3
	case "none", "off", "disabled":
		return StoreNone
	default:
		return StoreLocal
	}
}
