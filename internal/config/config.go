package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = "8080"
	DefaultModel   = "gpt-3.5-turbo"
	DefaultTimeout = 60 * time.Second
)

type Config struct {
	Host            string
	Port            string
	OpenAIKey       string
	OpenAIBaseURL   string
	Model           string
	UpstreamTimeout time.Duration
	LogLevel        string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() Config {
	c := Config{}
	c.Host = getenv("HOST", DefaultHost)
	c.Port = getenv("PORT", DefaultPort)
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	c.Model = getenv("OPENAI_MODEL", DefaultModel)
	c.UpstreamTimeout = getduration("UPSTREAM_TIMEOUT", DefaultTimeout)
	c.LogLevel = getenv("LOG_LEVEL", "info")
	return c
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c Config) HasOpenAIKey() bool {
	return c.OpenAIKey != ""
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
