package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if !cfg.Extract.Uppercase {
		t.Error("uppercase should default to true")
	}
	if cfg.Export.Engine != "excelize" || cfg.Export.Sheet != "DATA" || cfg.Export.Prefix != "RentaMAX" {
		t.Errorf("export defaults = %+v", cfg.Export)
	}
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.toml")
	os.WriteFile(path, []byte(`
[export]
prefix = "Siniestros"

[extract]
uppercase = false

[registry]
fields = ["NUM_POL", "TASA_VENTA"]

[registry.patterns]
NUM_POL = 'POLIZA\s+([A-Z0-9]+)'
`), 0644)

	cfg := Load(path)
	if cfg.Export.Prefix != "Siniestros" {
		t.Errorf("prefix = %q", cfg.Export.Prefix)
	}
	if cfg.Extract.Uppercase {
		t.Error("uppercase should be overridden to false")
	}
	if len(cfg.Registry.Fields) != 2 || cfg.Registry.Fields[0] != "NUM_POL" {
		t.Errorf("fields = %v", cfg.Registry.Fields)
	}
	if cfg.Registry.Patterns["NUM_POL"] == "" {
		t.Error("pattern override missing")
	}
	// Defaults preserved
	if cfg.Export.Engine != "excelize" {
		t.Errorf("engine default lost: %q", cfg.Export.Engine)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EXPEDIENTES_ADDR", ":9999")
	t.Setenv("EXPEDIENTES_EXPORT_PREFIX", "EnvPrefix")
	t.Setenv("EXPEDIENTES_UPPERCASE", "false")

	cfg := Load("/nonexistent/path.toml")
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Export.Prefix != "EnvPrefix" {
		t.Errorf("prefix = %q", cfg.Export.Prefix)
	}
	if cfg.Extract.Uppercase {
		t.Error("env should override uppercase to false")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	cfg.Server.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty addr")
	}

	cfg = Default()
	cfg.Export.Sheet = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty sheet")
	}
}
