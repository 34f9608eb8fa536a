package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTemp(t, `
[core]
log_format = "%h %^[%d:%^] \"%r\" %s %b"
date_format = "%d/%b/%Y"
double_decode = true
append_method = true
static_files = [".png", ".css"]

[input]
path = "access.log"

[geoip]
country_db = "GeoLite2-Country.mmdb"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Core.LogFormat == "" {
		t.Fatal("expected log_format to be populated")
	}
	if !cfg.Core.DoubleDecode {
		t.Error("expected double_decode = true")
	}
	if cfg.Input.Path != "access.log" {
		t.Errorf("Input.Path = %q, want access.log", cfg.Input.Path)
	}
	if cfg.Core.StaticFileMaxLen != 1 {
		t.Errorf("StaticFileMaxLen default = %d, want 1", cfg.Core.StaticFileMaxLen)
	}
}

func TestLoadMissingLogFormatFails(t *testing.T) {
	path := writeTemp(t, `
[core]
date_format = "%d/%b/%Y"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected ConfigMissing error when log_format is absent")
	}
}

func TestLoadMissingDateFormatFails(t *testing.T) {
	path := writeTemp(t, `
[core]
log_format = "%h %r %s %b"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected ConfigMissing error when date_format is absent")
	}
}

func TestLoadNonexistentFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.toml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadPreservesExplicitStaticFileMaxLen(t *testing.T) {
	path := writeTemp(t, `
[core]
log_format = "%h %r %s %b"
date_format = "%d/%b/%Y"
static_file_max_len = 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Core.StaticFileMaxLen != 3 {
		t.Errorf("StaticFileMaxLen = %d, want 3 (explicit value should not be overridden)", cfg.Core.StaticFileMaxLen)
	}
}
