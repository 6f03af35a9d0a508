package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	HTTP   HTTPClientConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
	MaxBodyBytes    int64         `env:"SERVER_MAX_BODY_BYTES" envDefault:"20971520"`
}

// GeminiConfig holds provider settings. An empty APIKey is not a load error:
// the relay routes answer 500 until the key is configured.
type GeminiConfig struct {
	APIKey     string `env:"GEMINI_API_KEY"`
	BaseURL    string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	APIVersion string `env:"GEMINI_API_VERSION" envDefault:"v1beta"`
	RawModel   string `env:"GEMINI_RAW_MODEL" envDefault:"gemini-2.0-pro"`
	TextModel  string `env:"GEMINI_TEXT_MODEL" envDefault:"gemini-2.0-flash"`
}

type HTTPClientConfig struct {
	Timeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"3m"`
	PreferIPv4 bool          `env:"HTTP_PREFER_IPV4" envDefault:"false"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
