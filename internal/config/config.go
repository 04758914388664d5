package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8090"`

	// Chunk store (Supabase)
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`

	// OCR. An empty key switches ingestion to local text extraction.
	MistralAPIKey string `env:"MISTRAL_API_KEY"`
	MistralModel  string `env:"MISTRAL_MODEL" envDefault:"mistral-ocr-2505"`

	// API auth
	APIKey string `env:"CURSUS_API_KEY"`

	// Worker pool
	WorkerCount  int `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize int `env:"MAX_QUEUE_SIZE" envDefault:"100"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Level-C token window
	TokenMin    int `env:"CHUNK_TOKEN_MIN" envDefault:"150"`
	TokenMax    int `env:"CHUNK_TOKEN_MAX" envDefault:"300"`
	TokenAbsMin int `env:"CHUNK_TOKEN_ABS_MIN" envDefault:"50"`

	// Metadata defaults
	DefaultCycle string `env:"DEFAULT_CYCLE" envDefault:"3"`
	Lang         string `env:"DOC_LANG" envDefault:"fr"`

	// Job state
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"1h"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.TokenMin <= 0 {
		cfg.TokenMin = 150
	}
	if cfg.TokenMax <= cfg.TokenMin {
		cfg.TokenMax = cfg.TokenMin * 2
	}
	if cfg.TokenAbsMin <= 0 {
		cfg.TokenAbsMin = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("CURSUS_API_KEY is required")
	}
	return nil
}
