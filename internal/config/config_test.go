package config

import (
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want %q", cfg.General.CurrencySymbol, "$")
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want %q", cfg.Appearance.Theme, "flexoki-dark")
	}
	if Exists() {
		t.Errorf("Exists() = true for empty config dir")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.CurrencySymbol = "€"
	cfg.General.DatabasePath = "/tmp/custom.db"
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatalf("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.CurrencySymbol != "€" {
		t.Errorf("CurrencySymbol = %q, want %q", got.General.CurrencySymbol, "€")
	}
	if got.DatabasePath() != "/tmp/custom.db" {
		t.Errorf("DatabasePath() = %q, want %q", got.DatabasePath(), "/tmp/custom.db")
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q, want %q", got.Appearance.Theme, "tokyo-night")
	}
}
