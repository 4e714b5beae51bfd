package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixlex.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefinedKeysOnly(t *testing.T) {
	path := writeConfig(t, "separator = \"|\"\nworkers = 3\nformat = \"JSON\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Separator != '|' || cfg.Workers != 3 || cfg.Format != FormatJSON {
		t.Fatalf("unexpected overlay: %+v", cfg)
	}
	def := Default()
	if cfg.MaxMessageBytes != def.MaxMessageBytes || cfg.ListenAddr != def.ListenAddr {
		t.Fatalf("undefined keys must keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "seperator = \"|\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "seperator") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"max_message_bytes = 0\n": "max_message_bytes",
		"workers = -1\n":          "workers",
		"format = \"xml\"\n":      "format",
		"log_level = \"loud\"\n":  "log_level",
		"separator = \"=\"\n":     "separator",
	}
	for body, want := range cases {
		_, err := Load(writeConfig(t, body))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("body %q: expected error mentioning %q, got %v", body, want, err)
		}
	}
}

func TestParseSeparator(t *testing.T) {
	cases := map[string]byte{"soh": 0x01, "SOH": 0x01, "|": '|', "^": '^', `\x1f`: 0x1f}
	for raw, want := range cases {
		got, err := ParseSeparator(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSeparator(%q) = %#x,%v want %#x", raw, got, err, want)
		}
	}
	for _, raw := range []string{"ab", "=", "7", `\x3d`, `\x30`, `\x39`, `\x00`, `\xzz`} {
		if _, err := ParseSeparator(raw); err == nil {
			t.Fatalf("expected separator %q to be rejected", raw)
		}
	}
}

func TestLoadMaxRequestBytes(t *testing.T) {
	cfg, err := Load(writeConfig(t, "max_request_bytes = 4096\nmax_message_bytes = 1024\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxRequestBytes != 4096 {
		t.Fatalf("expected 4096, got %d", cfg.MaxRequestBytes)
	}
	if _, err := Load(writeConfig(t, "max_request_bytes = 512\n")); err == nil || !strings.Contains(err.Error(), "max_request_bytes") {
		t.Fatalf("expected request limit below message limit to fail, got %v", err)
	}
}

func TestDefaultLeavesLogLevelToEnvironment(t *testing.T) {
	if Default().LogLevel != "" {
		t.Fatalf("default log level must be unset")
	}
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestTemplateLoadsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixlex.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing file to be kept")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Separator != 0x01 {
		t.Fatalf("expected soh separator, got %#x", cfg.Separator)
	}
}
