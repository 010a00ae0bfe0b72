package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HOST", "PORT", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "UPSTREAM_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	c := FromEnv()
	if c.Addr() != "127.0.0.1:8080" {
		t.Fatalf("expected default addr 127.0.0.1:8080, got %s", c.Addr())
	}
	if c.Model != "gpt-3.5-turbo" {
		t.Fatalf("expected default model gpt-3.5-turbo, got %s", c.Model)
	}
	if c.UpstreamTimeout != DefaultTimeout {
		t.Fatalf("expected default timeout %s, got %s", DefaultTimeout, c.UpstreamTimeout)
	}
	if c.HasOpenAIKey() {
		t.Fatal("key should be unset")
	}
	if c.LogLevel != "info" {
		t.Fatalf("expected log level info, got %s", c.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:1234")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")

	c := FromEnv()
	if c.Addr() != "0.0.0.0:9000" {
		t.Fatalf("expected addr 0.0.0.0:9000, got %s", c.Addr())
	}
	if !c.HasOpenAIKey() || c.OpenAIKey != "sk-test" {
		t.Fatalf("expected key sk-test, got %q", c.OpenAIKey)
	}
	if c.OpenAIBaseURL != "http://localhost:1234" {
		t.Fatalf("unexpected base url %s", c.OpenAIBaseURL)
	}
	if c.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model %s", c.Model)
	}
	if c.UpstreamTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", c.UpstreamTimeout)
	}
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	if got := FromEnv().UpstreamTimeout; got != DefaultTimeout {
		t.Fatalf("expected fallback %s, got %s", DefaultTimeout, got)
	}
	t.Setenv("UPSTREAM_TIMEOUT", "-1s")
	if got := FromEnv().UpstreamTimeout; got != DefaultTimeout {
		t.Fatalf("expected fallback %s for negative value, got %s", DefaultTimeout, got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is present, even when empty.
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "PORT"} {
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OPENAI_API_KEY=sk-from-file\nOPENAI_MODEL=gpt-4o\nPORT=7777\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("OPENAI_MODEL", "gpt-env")

	c := Load(path)
	if c.OpenAIKey != "sk-from-file" {
		t.Fatalf("expected key from file, got %q", c.OpenAIKey)
	}
	if c.Model != "gpt-env" {
		t.Fatalf("environment should win over .env, got %s", c.Model)
	}
	if c.Port != "7777" {
		t.Fatalf("expected port from file, got %s", c.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	c := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	if c.Port != DefaultPort {
		t.Fatalf("expected default port, got %s", c.Port)
	}
}
