// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Dataset, Synonyms, Frequency, Render, Server, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Cloud kinds accepted in CloudConfig.Kind.
const (
	CloudStatic    = "static"
	CloudSynonyms  = "synonyms"
	CloudFrequency = "frequency"
)

// Render formats accepted in RenderConfig.Format.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatBoth = "both"
)

// Config is the top-level application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Synonyms  SynonymsConfig  `yaml:"synonyms"`
	Frequency FrequencyConfig `yaml:"frequency"`
	Clouds    []CloudConfig   `yaml:"clouds"`
	Render    RenderConfig    `yaml:"render"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DatasetConfig locates the CSV source and names the column the clouds
// draw their vocabulary from.
type DatasetConfig struct {
	Path  string `yaml:"path"`
	Field string `yaml:"field"`
}

// SynonymsConfig holds the synonym service endpoint and credential.
type SynonymsConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// FrequencyConfig holds the frequency service endpoint.
type FrequencyConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// CloudConfig describes one cloud: where its vocabulary comes from and how
// it is enriched before rendering.
type CloudConfig struct {
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	RowContains string  `yaml:"rowContains"`
	VerbsOnly   bool    `yaml:"verbsOnly"`
	MaxWords    int     `yaml:"maxWords"`
	Shuffle     bool    `yaml:"shuffle"`
	MinWeight   float64 `yaml:"minWeight"`
	Surface     string  `yaml:"surface"`
}

// RenderConfig controls the drawing surface and font scaling.
type RenderConfig struct {
	OutputDir   string   `yaml:"outputDir"`
	Format      string   `yaml:"format"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	DefaultSize float64  `yaml:"defaultSize"`
	MinSize     float64  `yaml:"minSize"`
	MaxSize     float64  `yaml:"maxSize"`
	FontFamily  string   `yaml:"fontFamily"`
	Background  string   `yaml:"background"`
	Palette     []string `yaml:"palette"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	for i := range cfg.Clouds {
		if cfg.Clouds[i].Surface == "" {
			cfg.Clouds[i].Surface = cfg.Clouds[i].Name
		}
	}
	return cfg, nil
}

// defaultConfig returns a Config carrying the three stock clouds and
// endpoints for the public word services.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:  "data/indicators.csv",
			Field: "indicator_name",
		},
		Synonyms: SynonymsConfig{
			BaseURL: "https://api.wordnik.com/v4/word.json",
			Timeout: 10 * time.Second,
		},
		Frequency: FrequencyConfig{
			BaseURL: "https://api.datamuse.com/words",
			Timeout: 10 * time.Second,
		},
		Clouds: []CloudConfig{
			{Name: "verbs", Kind: CloudStatic, VerbsOnly: true, Shuffle: true, MaxWords: 50},
			{Name: "male", Kind: CloudSynonyms, RowContains: "Male", MaxWords: 15},
			{Name: "female", Kind: CloudFrequency, RowContains: "Female", MaxWords: 20, MinWeight: 400},
		},
		Render: RenderConfig{
			OutputDir:   "out",
			Format:      FormatSVG,
			Width:       960,
			Height:      540,
			DefaultSize: 18,
			MinSize:     12,
			MaxSize:     48,
			FontFamily:  "Georgia, serif",
			Background:  "#ffffff",
			Palette:     []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"},
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
	}
}

// Validate reports the first configuration problem it finds.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if c.Dataset.Field == "" {
		return fmt.Errorf("dataset.field is required")
	}
	switch c.Render.Format {
	case FormatSVG, FormatJSON, FormatBoth:
	default:
		return fmt.Errorf("render.format %q is not one of svg, json, both", c.Render.Format)
	}
	if c.Render.MinSize <= 0 || c.Render.MaxSize < c.Render.MinSize {
		return fmt.Errorf("render sizes invalid: minSize=%v maxSize=%v", c.Render.MinSize, c.Render.MaxSize)
	}
	names := make(map[string]bool, len(c.Clouds))
	for _, cl := range c.Clouds {
		if cl.Name == "" {
			return fmt.Errorf("every cloud needs a name")
		}
		if names[cl.Name] {
			return fmt.Errorf("duplicate cloud name %q", cl.Name)
		}
		names[cl.Name] = true
		switch cl.Kind {
		case CloudStatic, CloudSynonyms, CloudFrequency:
		default:
			return fmt.Errorf("cloud %q: kind %q is not one of static, synonyms, frequency", cl.Name, cl.Kind)
		}
		if cl.Kind == CloudSynonyms && c.Synonyms.APIKey == "" {
			return fmt.Errorf("cloud %q needs synonyms.apiKey (or WV_SYNONYMS_API_KEY)", cl.Name)
		}
	}
	return nil
}

// applyEnvOverrides reads WV_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WV_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("WV_DATASET_FIELD"); v != "" {
		cfg.Dataset.Field = v
	}
	if v := os.Getenv("WV_SYNONYMS_BASE_URL"); v != "" {
		cfg.Synonyms.BaseURL = v
	}
	if v := os.Getenv("WV_SYNONYMS_API_KEY"); v != "" {
		cfg.Synonyms.APIKey = v
	}
	if v := os.Getenv("WV_FREQUENCY_BASE_URL"); v != "" {
		cfg.Frequency.BaseURL = v
	}
	if v := os.Getenv("WV_RENDER_OUTPUT_DIR"); v != "" {
		cfg.Render.OutputDir = v
	}
	if v := os.Getenv("WV_RENDER_FORMAT"); v != "" {
		cfg.Render.Format = v
	}
	if v := os.Getenv("WV_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WV_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WV_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("WV_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
