package common

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Extract  ExtractConfig  `toml:"extract"`
	Export   ExportConfig   `toml:"export"`
	Registry RegistryConfig `toml:"registry"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ExtractConfig holds extraction-related configuration
type ExtractConfig struct {
	// Uppercase converts document text to uppercase before matching.
	// The built-in rules are authored for the uppercase form.
	Uppercase bool `toml:"uppercase"`
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	Engine string `toml:"engine"`
	Prefix string `toml:"prefix"`
	Sheet  string `toml:"sheet"`
}

// RegistryConfig selects which fields are extracted and allows per-field
// pattern overrides. An empty Fields list means the full schema.
type RegistryConfig struct {
	Fields   []string          `toml:"fields"`
	Patterns map[string]string `toml:"patterns"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Extract: ExtractConfig{Uppercase: true},
		Export: ExportConfig{
			Engine: "excelize",
			Prefix: "RentaMAX",
			Sheet:  "DATA",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
// A missing file is not an error; the defaults stand.
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = "expedientes.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("EXPEDIENTES_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("EXPEDIENTES_EXPORT_ENGINE"); v != "" {
		cfg.Export.Engine = v
	}
	if v := os.Getenv("EXPEDIENTES_EXPORT_PREFIX"); v != "" {
		cfg.Export.Prefix = v
	}
	if v := os.Getenv("EXPEDIENTES_EXPORT_SHEET"); v != "" {
		cfg.Export.Sheet = v
	}
	if v := os.Getenv("EXPEDIENTES_UPPERCASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Extract.Uppercase = b
		}
	}
	if v := os.Getenv("EXPEDIENTES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "server addr is required", ErrInvalidInput)
	}
	if c.Export.Sheet == "" {
		return NewAppError("CONFIG_ERROR", "export sheet name is required", ErrInvalidInput)
	}
	if c.Export.Prefix == "" {
		return NewAppError("CONFIG_ERROR", "export prefix is required", ErrInvalidInput)
	}
	return nil
}
