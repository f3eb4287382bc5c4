package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	View    ViewConfig    `yaml:"view"`
	Synth   SynthConfig   `yaml:"synth"`
	Capture CaptureConfig `yaml:"capture"`
	Mock    MockConfig    `yaml:"mock"`
}

// ViewConfig contains display parameters.
type ViewConfig struct {
	PointBudget  int     `yaml:"point_budget"`  // Max points handed to the renderer at once
	WindowWidth  float32 `yaml:"window_width"`  // Initial window width (px)
	WindowHeight float32 `yaml:"window_height"` // Initial window height (px)
	Title        string  `yaml:"title"`
}

// SynthConfig contains synthetic test-signal parameters.
type SynthConfig struct {
	Points int `yaml:"points"` // Signal length when generating test data
}

// CaptureConfig contains serial capture configuration.
type CaptureConfig struct {
	Port       string `yaml:"port"`
	BaudRate   int    `yaml:"baud_rate"`
	BufferSize int    `yaml:"buffer_size"`
	Points     int    `yaml:"points"` // Samples to record before opening the viewer
}

// MockConfig contains mock capture-source configuration.
type MockConfig struct {
	Amplitude  float64       `yaml:"amplitude"`   // Signal amplitude
	Frequency  float64       `yaml:"frequency"`   // Signal frequency (Hz)
	NoiseLevel float64       `yaml:"noise_level"` // Additive noise level
	SampleRate time.Duration `yaml:"sample_rate"` // Time between samples
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			PointBudget:  10000,
			WindowWidth:  1200,
			WindowHeight: 600,
			Title:        "dataview",
		},
		Synth: SynthConfig{
			Points: 10_000_000,
		},
		Capture: CaptureConfig{
			Port:       "/dev/ttyACM0", // "COM3" or similar on Windows
			BaudRate:   115200,
			BufferSize: 100,
			Points:     100_000,
		},
		Mock: MockConfig{
			Amplitude:  1.0,
			Frequency:  0.5,
			NoiseLevel: 0.05,
			SampleRate: time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.View.PointBudget <= 0 {
		c.View.PointBudget = def.View.PointBudget
	}
	if c.View.WindowWidth <= 0 {
		c.View.WindowWidth = def.View.WindowWidth
	}
	if c.View.WindowHeight <= 0 {
		c.View.WindowHeight = def.View.WindowHeight
	}
	if c.View.Title == "" {
		c.View.Title = def.View.Title
	}

	if c.Synth.Points <= 0 {
		c.Synth.Points = def.Synth.Points
	}

	if c.Capture.Port == "" {
		c.Capture.Port = def.Capture.Port
	}
	if c.Capture.BaudRate <= 0 {
		c.Capture.BaudRate = def.Capture.BaudRate
	}
	if c.Capture.BufferSize <= 0 {
		c.Capture.BufferSize = def.Capture.BufferSize
	}
	if c.Capture.Points <= 0 {
		c.Capture.Points = def.Capture.Points
	}

	if c.Mock.Amplitude == 0 {
		c.Mock.Amplitude = def.Mock.Amplitude
	}
	if c.Mock.Frequency == 0 {
		c.Mock.Frequency = def.Mock.Frequency
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
