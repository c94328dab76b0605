package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "environment: test\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", c.Server.Port)
	}
	if c.Groq.Model != "llama-3.1-8b-instant" {
		t.Fatalf("unexpected default model %q", c.Groq.Model)
	}
	if c.Agent.HistoryPeriod != "1mo" || c.Agent.AverageDays != 7 {
		t.Fatalf("unexpected agent defaults: %q %d", c.Agent.HistoryPeriod, c.Agent.AverageDays)
	}
	if c.Primary.Throttle.Seconds() != 2 {
		t.Fatalf("unexpected throttle default %v", c.Primary.Throttle)
	}
}

func TestValidateRequiresCompletionKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "environment: test\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation failure without groq key")
	}
	c.Groq.APIKey = "gsk_test"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".env",
		"\uFEFF# comment\nGROQ_API_KEY = gsk_abc\n\nALPHA_VANTAGE_API_KEY=demo\nBROKEN LINE\n")
	vars := LoadEnvFile(path)
	if vars["GROQ_API_KEY"] != "gsk_abc" {
		t.Fatalf("expected BOM and spaces stripped, got %q", vars["GROQ_API_KEY"])
	}
	if vars["ALPHA_VANTAGE_API_KEY"] != "demo" {
		t.Fatalf("unexpected value %q", vars["ALPHA_VANTAGE_API_KEY"])
	}
	if len(vars) != 2 {
		t.Fatalf("expected 2 vars, got %d", len(vars))
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	if vars := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); len(vars) != 0 {
		t.Fatalf("expected empty map for missing file")
	}
}
