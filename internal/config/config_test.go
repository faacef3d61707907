package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.PreviewRows = 25
	c.Alpha = 0.01
	c.Delimiter = ";"
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PreviewRows != 25 || got.Alpha != 0.01 || got.Delimiter != ";" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	// Untouched keys keep their defaults.
	if got.PlotWidth != Default().PlotWidth {
		t.Errorf("PlotWidth = %d, want default %d", got.PlotWidth, Default().PlotWidth)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if got.PreviewRows != d.PreviewRows || got.Alpha != d.Alpha {
		t.Fatalf("defaults not applied: %+v", got)
	}
}
