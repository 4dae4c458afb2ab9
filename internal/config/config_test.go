package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.ResizeMethod != ResizeDelayed {
		t.Fatalf("expected default resize_method %q, got %q", ResizeDelayed, cfg.ResizeMethod)
	}
	if cfg.DesignDPI != 96 {
		t.Fatalf("expected design_dpi 96, got %v", cfg.DesignDPI)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.DPISnap != DefaultDPISnap {
		t.Fatalf("expected dpi_snap %d, got %v", DefaultDPISnap, res.Config.DPISnap)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Window.FontSize != DefaultFontSize {
		t.Fatalf("expected font_size %d, got %v", DefaultFontSize, res.Config.Window.FontSize)
	}
}

func TestLoadFromPath_OverridesAndMonitorDPI(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"resize_method: immediate",
		"dpi_snap: 0",
		"monitor_dpi:",
		"  HDMI-1: 144",
		"window:",
		"  title: editor",
		"  font_size: 11",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.ResizeMethod != ResizeImmediate {
		t.Fatalf("expected immediate, got %q", cfg.ResizeMethod)
	}
	if cfg.DPISnap != 0 {
		t.Fatalf("expected dpi_snap 0, got %v", cfg.DPISnap)
	}
	if got := cfg.MonitorDPI["HDMI-1"]; got != 144 {
		t.Fatalf("expected HDMI-1 override 144, got %v", got)
	}
	if cfg.Window.Title != "editor" || cfg.Window.FontSize != 11 {
		t.Fatalf("unexpected window config: %+v", cfg.Window)
	}
	// Untouched keys keep their defaults.
	if cfg.DesignDPI != DefaultDesignDPI {
		t.Fatalf("expected design_dpi default, got %v", cfg.DesignDPI)
	}
}

func TestLoadFromPath_UnknownKeyFails(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "hotkey: Mod4-t\n"))
	if err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestLoadFromPath_ValidationErrorCarriesLine(t *testing.T) {
	path := writeConfig(t, "design_dpi: 96\nresize_method: sometimes\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "resize_method" {
		t.Fatalf("expected path resize_method, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix in %q", err.Error())
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero design dpi", func(c *Config) { c.DesignDPI = 0 }, "design_dpi"},
		{"negative snap", func(c *Config) { c.DPISnap = -1 }, "dpi_snap"},
		{"zero override", func(c *Config) { c.MonitorDPI["DP-1"] = 0 }, "monitor_dpi.DP-1"},
		{"zero font", func(c *Config) { c.Window.FontSize = 0 }, "window.font_size"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestParseResizeMethod(t *testing.T) {
	if m, err := ParseResizeMethod(" Immediate "); err != nil || m != ResizeImmediate {
		t.Fatalf("expected immediate, got %q (%v)", m, err)
	}
	if _, err := ParseResizeMethod("eventually"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestGetLoggingConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig().GetLoggingConfig()
	if cfg.MaxSizeMB != 10 || cfg.MaxFiles != 3 {
		t.Fatalf("unexpected rotation defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.File, filepath.Join(".local", "share", "dpiwatch", "dpiwatch.log")) {
		t.Fatalf("unexpected default log file %q", cfg.File)
	}
}
