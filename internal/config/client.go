package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// ClientConfig configures the terminal client (cmd/todo).
type ClientConfig struct {
	APIURL         string          `env:"TODO_API_URL" env-default:"http://localhost:8080"`
	RequestTimeout durationSeconds `env:"TODO_REQUEST_TIMEOUT" env-default:"10s"`
	LogFile        string          `env:"TODO_LOG_FILE" env-default:""`
	LogLevel       string          `env:"LOG_LEVEL" env-default:"info"`
	ToastTTL       durationSeconds `env:"TODO_TOAST_TTL" env-default:"3s"`
}

func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// Validate checks the API URL; it is called again after flag overrides.
func (c *ClientConfig) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("TODO_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("TODO_API_URL: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("TODO_API_URL: missing host")
	}
	return nil
}
