package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Storage   StorageConfig
	Screening ScreeningConfig

	// DotEnvLoaded is set by Load when a .env file was read.
	DotEnvLoaded bool
}

type ServerConfig struct {
	Port             string        `env:"PORT" envDefault:"5000"`
	Env              string        `env:"APP_ENV" envDefault:"development"`
	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	ReadTimeout      time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout     time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	LogJSON          bool          `env:"LOG_JSON" envDefault:"false"`
	LogDebug         bool          `env:"LOG_DEBUG" envDefault:"false"`
}

type LLMConfig struct {
	Provider     string  `env:"LLM_PROVIDER" envDefault:"groq"`
	Temperature  float32 `env:"LLM_TEMPERATURE" envDefault:"0.2"`
	GroqAPIKey   string  `env:"GROQ_API_KEY"`
	GroqBaseURL  string  `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel    string  `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GeminiAPIKey string  `env:"GEMINI_API_KEY"`
	GeminiModel  string  `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

type StorageConfig struct {
	UploadPath  string `env:"UPLOAD_PATH" envDefault:"./uploads"`
	MaxFileSize int64  `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	MaxFiles    int    `env:"MAX_FILES" envDefault:"10"`
}

type ScreeningConfig struct {
	Concurrency     int  `env:"SCREENING_CONCURRENCY" envDefault:"3"`
	IsolateFailures bool `env:"SCREENING_ISOLATE_FAILURES" envDefault:"false"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	dotEnvErr := godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.DotEnvLoaded = dotEnvErr == nil

	return cfg, nil
}

// Parse builds the config from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case ProviderGroq:
		if c.LLM.GroqAPIKey == "" {
			errs = append(errs, errors.New("GROQ_API_KEY is required when LLM_PROVIDER=groq"))
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}

	if c.Storage.MaxFileSize <= 0 {
		errs = append(errs, errors.New("MAX_FILE_SIZE must be positive"))
	}
	if c.Storage.MaxFiles <= 0 {
		errs = append(errs, errors.New("MAX_FILES must be positive"))
	}
	if c.Screening.Concurrency <= 0 {
		errs = append(errs, errors.New("SCREENING_CONCURRENCY must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// BodyLimit is the largest multipart request the server accepts: every file at
// its maximum size plus room for the form fields.
func (c *Config) BodyLimit() int {
	return int(c.Storage.MaxFileSize)*c.Storage.MaxFiles + 1<<20
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
