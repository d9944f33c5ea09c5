// Package config loads dashboard settings: built-in defaults, then an optional YAML
// file, then LAUNCHDASH_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/logging"
	"github.com/iafilius/LaunchDashboard/src/types"
)

// DefaultTitle is the dashboard page heading.
const DefaultTitle = "SpaceX Launch Records Dashboard"

// Slider configures the payload range widget.
type Slider struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Marks returns the labelled slider positions: 0, 100 and every step from Min to Max.
func (s Slider) Marks() []float64 {
	marks := []float64{0, 100}
	if s.Step <= 0 {
		return marks
	}
	for v := s.Min; v <= s.Max; v += s.Step {
		if v == 0 || v == 100 {
			continue
		}
		marks = append(marks, v)
	}
	return marks
}

type Config struct {
	DataPath  string
	Host      string
	Port      int
	LogLevel  string
	LogFormat string

	Title       string
	Slider      Slider
	ChartWidth  int
	ChartHeight int
	// Sites overrides the dropdown entries derived from the dataset when non-empty.
	Sites []types.SiteOption
}

type configFile struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Data struct {
		Path string `yaml:"path"`
	} `yaml:"data"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Dashboard struct {
		Title  string  `yaml:"title"`
		Slider *Slider `yaml:"slider"`
		Chart  struct {
			Width  int `yaml:"width"`
			Height int `yaml:"height"`
		} `yaml:"chart"`
		Sites []struct {
			Label string `yaml:"label"`
			Value string `yaml:"value"`
		} `yaml:"sites"`
	} `yaml:"dashboard"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataPath:    dataset.DefaultPath,
		Host:        "127.0.0.1",
		Port:        8050,
		LogLevel:    "info",
		LogFormat:   logging.FormatText,
		Title:       DefaultTitle,
		Slider:      Slider{Min: 0, Max: 10000, Step: 1000},
		ChartWidth:  800,
		ChartHeight: 0,
	}
}

// Load builds the configuration. An empty path or a missing file leaves the defaults
// in place; a malformed file or an invalid result is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := apply(&cfg, raw); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			logging.Debugf("config file %s not found, using defaults", path)
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.DataPath = envOrDefault("LAUNCHDASH_DATA", cfg.DataPath)
	cfg.Host = envOrDefault("LAUNCHDASH_HOST", cfg.Host)
	cfg.Port = envInt("LAUNCHDASH_PORT", cfg.Port)
	cfg.LogLevel = envOrDefault("LAUNCHDASH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LAUNCHDASH_LOG_FORMAT", cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func apply(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return err
	}
	if f.Server.Host != "" {
		cfg.Host = f.Server.Host
	}
	if f.Server.Port != 0 {
		cfg.Port = f.Server.Port
	}
	if f.Data.Path != "" {
		cfg.DataPath = f.Data.Path
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	if f.Dashboard.Title != "" {
		cfg.Title = f.Dashboard.Title
	}
	if f.Dashboard.Slider != nil {
		cfg.Slider = *f.Dashboard.Slider
	}
	if f.Dashboard.Chart.Width > 0 {
		cfg.ChartWidth = f.Dashboard.Chart.Width
	}
	if f.Dashboard.Chart.Height > 0 {
		cfg.ChartHeight = f.Dashboard.Chart.Height
	}
	for _, s := range f.Dashboard.Sites {
		value := strings.TrimSpace(s.Value)
		if value == "" {
			continue
		}
		label := strings.TrimSpace(s.Label)
		if label == "" {
			label = value
		}
		cfg.Sites = append(cfg.Sites, types.SiteOption{Label: label, Value: value})
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be in 1..65535", c.Port)
	}
	if c.Slider.Min >= c.Slider.Max {
		return fmt.Errorf("invalid slider: min %g must be below max %g", c.Slider.Min, c.Slider.Max)
	}
	if c.Slider.Step <= 0 {
		return fmt.Errorf("invalid slider step %g", c.Slider.Step)
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("missing data path")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logging.Warnf("ignoring %s=%q: not an integer", name, raw)
		return fallback
	}
	return v
}
