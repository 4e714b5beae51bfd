package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/fixlex/internal/logging"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the resolved runtime configuration for fixlex.
type Config struct {
	Separator       byte
	MaxMessageBytes int
	MaxRequestBytes int64
	Workers         int
	Format          string
	ListenAddr      string
	CorsOrigins     []string
	// LogLevel is empty unless set explicitly; the environment then decides.
	LogLevel string
}

// fixlex.toml key mapping.
type fileConfig struct {
	Separator       string   `toml:"separator"`
	MaxMessageBytes int      `toml:"max_message_bytes"`
	MaxRequestBytes int64    `toml:"max_request_bytes"`
	Workers         int      `toml:"workers"`
	Format          string   `toml:"format"`
	ListenAddr      string   `toml:"listen_addr"`
	CorsOrigins     []string `toml:"cors_origins"`
	LogLevel        string   `toml:"log_level"`
}

func Default() Config {
	return Config{
		Separator:       0x01,
		MaxMessageBytes: 64 * 1024,
		MaxRequestBytes: 1 << 20,
		Workers:         0,
		Format:          FormatText,
		ListenAddr:      ":9400",
		CorsOrigins:     []string{"http://localhost:3000"},
		LogLevel:        "",
	}
}

// Load overlays the keys defined in the TOML file at path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load fixlex config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load fixlex config (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("separator") {
		sep, err := ParseSeparator(raw.Separator)
		if err != nil {
			return Config{}, fmt.Errorf("load fixlex config (%s): %w", path, err)
		}
		cfg.Separator = sep
	}
	if meta.IsDefined("max_message_bytes") {
		cfg.MaxMessageBytes = raw.MaxMessageBytes
	}
	if meta.IsDefined("max_request_bytes") {
		cfg.MaxRequestBytes = raw.MaxRequestBytes
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("load fixlex config (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.MaxMessageBytes <= 0 {
		return fmt.Errorf("max_message_bytes must be positive")
	}
	if cfg.MaxRequestBytes < int64(cfg.MaxMessageBytes) {
		return fmt.Errorf("max_request_bytes must be at least max_message_bytes")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		return fmt.Errorf("unsupported format %q (expected text or json)", cfg.Format)
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); cfg.LogLevel != "" && !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}

// ParseSeparator accepts a single printable character, "soh", or a
// \xNN escape. Bytes that can appear inside a tag are rejected.
func ParseSeparator(raw string) (byte, error) {
	var sep byte
	switch s := strings.TrimSpace(raw); {
	case strings.EqualFold(s, "soh"), s == `\x01`, s == "\x01":
		return 0x01, nil
	case len(s) == 1:
		sep = s[0]
	case len(s) == 4 && strings.HasPrefix(s, `\x`):
		if _, err := fmt.Sscanf(s[2:], "%02x", &sep); err != nil {
			return 0, fmt.Errorf("invalid separator %q: %w", raw, err)
		}
	default:
		return 0, fmt.Errorf("invalid separator %q", raw)
	}
	if sep == 0 || sep == '=' || (sep >= '0' && sep <= '9') {
		return 0, fmt.Errorf("invalid separator %q: collides with tag syntax", raw)
	}
	return sep, nil
}
