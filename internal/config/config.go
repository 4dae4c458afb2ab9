package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResizeMethod selects how the controller reacts to DPI-change notifications.
type ResizeMethod string

const (
	ResizeImmediate ResizeMethod = "immediate" // Adjust on every notification, even mid-drag.
	ResizeDelayed   ResizeMethod = "delayed"   // Defer while the window is being dragged.
)

const (
	DefaultDesignDPI = 96
	DefaultDPISnap   = 24
	DefaultFontSize  = 9
)

// WindowConfig selects the window to watch and its base font.
type WindowConfig struct {
	// Title is a substring of the window title; empty means the active window.
	Title    string  `yaml:"title"`
	FontSize float64 `yaml:"font_size"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/dpiwatch/dpiwatch.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	ResizeMethod ResizeMethod       `yaml:"resize_method"`
	DesignDPI    float64            `yaml:"design_dpi"`
	DPISnap      float64            `yaml:"dpi_snap"`
	MonitorDPI   map[string]float64 `yaml:"monitor_dpi,omitempty"`
	Window       WindowConfig       `yaml:"window"`
	Display      string             `yaml:"display,omitempty"`
	Logging      LoggingConfig      `yaml:"logging,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		ResizeMethod: ResizeDelayed,
		DesignDPI:    DefaultDesignDPI,
		DPISnap:      DefaultDPISnap,
		MonitorDPI:   make(map[string]float64),
		Window: WindowConfig{
			FontSize: DefaultFontSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseResizeMethod converts a user supplied string to a ResizeMethod.
func ParseResizeMethod(s string) (ResizeMethod, error) {
	switch ResizeMethod(strings.ToLower(strings.TrimSpace(s))) {
	case ResizeImmediate:
		return ResizeImmediate, nil
	case ResizeDelayed:
		return ResizeDelayed, nil
	default:
		return "", fmt.Errorf("resize_method must be one of: immediate, delayed (got %q)", s)
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if _, err := ParseResizeMethod(string(c.ResizeMethod)); err != nil {
		return &ValidationError{Path: "resize_method", Err: err}
	}
	if c.DesignDPI <= 0 {
		return &ValidationError{Path: "design_dpi", Err: fmt.Errorf("design_dpi must be > 0")}
	}
	if c.DPISnap < 0 {
		return &ValidationError{Path: "dpi_snap", Err: fmt.Errorf("dpi_snap must be >= 0")}
	}
	for _, name := range sortedKeys(c.MonitorDPI) {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "monitor_dpi", Err: fmt.Errorf("monitor_dpi contains an empty output name")}
		}
		if c.MonitorDPI[name] <= 0 {
			return &ValidationError{Path: "monitor_dpi." + name, Err: fmt.Errorf("dpi override must be > 0")}
		}
	}
	if c.Window.FontSize <= 0 {
		return &ValidationError{Path: "window.font_size", Err: fmt.Errorf("font_size must be > 0")}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	return nil
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = os.Getenv("HOME")
		}
		if home == "" {
			// Last resort fallback - use current directory
			home = "."
		}
		cfg.File = filepath.Join(home, ".local/share/dpiwatch/dpiwatch.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
