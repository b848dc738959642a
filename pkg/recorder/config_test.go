package recorder

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "httptape.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigValidate(t *testing.T) {
	t.Run("requires path", func(t *testing.T) {
		cfg := Config{Mode: ModeRecord}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing path")
		}
	})

	t.Run("requires valid mode", func(t *testing.T) {
		cfg := Config{Path: "tapes", Mode: "observe"}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for invalid mode")
		}
	})

	t.Run("accepts record and replay", func(t *testing.T) {
		for _, mode := range []Mode{ModeRecord, ModeReplay} {
			cfg := Config{Path: "tapes", Mode: mode}
			if err := cfg.Validate(); err != nil {
				t.Errorf("mode %s: unexpected error %v", mode, err)
			}
		}
	})
}

func TestModeIsValid(t *testing.T) {
	if !ModeRecord.IsValid() || !ModeReplay.IsValid() {
		t.Error("expected built-in modes valid")
	}
	if Mode("passthrough").IsValid() {
		t.Error("expected unknown mode invalid")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		t.Setenv("HTTPTAPE_TEST_KEY", "from-env")
		path := writeConfig(t, `
path: tapes
mode: record
excludedHeaders:
  - x-internal-trace
headers:
  X-Api-Key:
    env: HTTPTAPE_TEST_KEY
  X-Client:
    value: httptape
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Path != "tapes" || cfg.Mode != ModeRecord {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if len(cfg.ExcludedHeaders) != 1 || cfg.ExcludedHeaders[0] != "x-internal-trace" {
			t.Errorf("unexpected excluded headers: %v", cfg.ExcludedHeaders)
		}

		resolved := map[string]string{}
		for name, src := range cfg.Headers {
			if v, err := src(); err == nil {
				resolved[name] = v
			}
		}
		if resolved["X-Api-Key"] != "from-env" {
			t.Errorf("expected env-sourced header, got %v", resolved)
		}
		if resolved["X-Client"] != "httptape" {
			t.Errorf("expected static header, got %v", resolved)
		}
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		path := writeConfig(t, "path: tapes\nmode: observe\n")
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected read error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "path: [unclosed\n")
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}
