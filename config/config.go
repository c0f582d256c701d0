package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Store    StoreConfig
	Sources  SourcesConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Admin    AdminConfig
	Pipeline PipelineConfig
}

type StoreConfig struct {
	MongoURI string
	Database string
	DryRun   bool
}

// SourcesConfig lists the vendor export files to ingest. Each entry pairs a
// file path with the vendor name that owns it.
type SourcesConfig struct {
	Dir   string
	Files []SourceFile
}

type SourceFile struct {
	Path   string
	Vendor string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type AdminConfig struct {
	Email    string
	Password string
}

type PipelineConfig struct {
	BatchSize       int
	DefaultCurrency string
}

func Load() *Config {
	_ = godotenv.Load()

	sourceDir := getEnv("SOURCE_DIR", "./data")
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	batchSize, _ := strconv.Atoi(getEnv("BATCH_SIZE", "100"))
	if batchSize <= 0 {
		batchSize = 100
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Store: StoreConfig{
			MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "catalog"),
			DryRun:   getEnv("RESEED_DRY_RUN", "false") == "true",
		},
		Sources: SourcesConfig{
			Dir:   sourceDir,
			Files: parseSourceFiles(getEnv("SOURCE_FILES", ""), sourceDir),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC_CATALOG", "catalog-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Pipeline: PipelineConfig{
			BatchSize:       batchSize,
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
		},
	}

	log.Printf("Config loaded: env=%s, db=%s, sources=%d, batch_size=%d",
		cfg.Env, cfg.Store.Database, len(cfg.Sources.Files), cfg.Pipeline.BatchSize)
	return cfg
}

// parseSourceFiles parses "file.json:Vendor Name,other.json:Other Vendor".
// Relative paths are resolved against dir.
func parseSourceFiles(raw, dir string) []SourceFile {
	var files []SourceFile
	for _, entry := range splitNonEmpty(raw) {
		path, vendor, found := strings.Cut(entry, ":")
		path = strings.TrimSpace(path)
		vendor = strings.TrimSpace(vendor)
		if !found || path == "" || vendor == "" {
			log.Printf("Skipping malformed SOURCE_FILES entry: %q", entry)
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		files = append(files, SourceFile{Path: path, Vendor: vendor})
	}
	return files
}

func splitNonEmpty(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
