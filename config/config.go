package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/d1nch8g/waveform/geometry"
	"github.com/d1nch8g/waveform/palette"
	"github.com/d1nch8g/waveform/render"
	"github.com/d1nch8g/waveform/sampler"
)

type Config struct {
	// Input is "sine", "mic" or a path to an mp3 or wav file.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Scale  float32 `yaml:"scale"`

	Type       string  `yaml:"type"`
	NoiseFloor float32 `yaml:"noise_floor"`
	Topology   string  `yaml:"topology"`
	Color      string  `yaml:"color"`
	ColorTo    string  `yaml:"color_to"`
	Strict     bool    `yaml:"strict"`

	BatchSize     int     `yaml:"batch_size"`
	SineFrequency float32 `yaml:"sine_frequency"`
	Seconds       float32 `yaml:"seconds"`
}

func Default() *Config {
	return &Config{
		Input:         "sine",
		Output:        "waveform.bin",
		Width:         800,
		Height:        200,
		Scale:         1,
		Type:          "linear",
		NoiseFloor:    -50,
		Topology:      "bars",
		Color:         "#000000",
		BatchSize:     4000,
		SineFrequency: 440,
		Seconds:       1,
	}
}

// LoadConfig reads a .env file if there is one, then WAVEFORM_* variables.
// A YAML file named by WAVEFORM_CONFIG is applied before the variables.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := Default()
	if path := os.Getenv("WAVEFORM_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the values set in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"WAVEFORM_INPUT":    &c.Input,
		"WAVEFORM_OUTPUT":   &c.Output,
		"WAVEFORM_TYPE":     &c.Type,
		"WAVEFORM_TOPOLOGY": &c.Topology,
		"WAVEFORM_COLOR":    &c.Color,
		"WAVEFORM_COLOR_TO": &c.ColorTo,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	floats := map[string]*float32{
		"WAVEFORM_WIDTH":          &c.Width,
		"WAVEFORM_HEIGHT":         &c.Height,
		"WAVEFORM_SCALE":          &c.Scale,
		"WAVEFORM_NOISE_FLOOR":    &c.NoiseFloor,
		"WAVEFORM_SINE_FREQUENCY": &c.SineFrequency,
		"WAVEFORM_SECONDS":        &c.Seconds,
	}
	for key, dst := range floats {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = float32(f)
	}

	if v, ok := os.LookupEnv("WAVEFORM_BATCH_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WAVEFORM_BATCH_SIZE: %w", err)
		}
		c.BatchSize = n
	}
	if v, ok := os.LookupEnv("WAVEFORM_STRICT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WAVEFORM_STRICT: %w", err)
		}
		c.Strict = b
	}
	return nil
}

// Region returns the configured drawing area.
func (c *Config) Region() geometry.Region {
	return geometry.Region{Width: c.Width, Height: c.Height}
}

// Format resolves the textual settings into a render format. A two color
// gradient is left open so it spans the downsampled buffer.
func (c *Config) Format() (render.Format, error) {
	t, err := sampler.ParseType(c.Type, c.NoiseFloor)
	if err != nil {
		return render.Format{}, err
	}
	if t.IsLogarithmic() && t.Floor() >= 0 {
		return render.Format{}, fmt.Errorf("noise floor must be negative, got %g", t.Floor())
	}
	top, err := geometry.ParseTopology(c.Topology)
	if err != nil {
		return render.Format{}, err
	}
	from, err := palette.Parse(c.Color)
	if err != nil {
		return render.Format{}, err
	}

	var scheme palette.Scheme = palette.Solid(from)
	if c.ColorTo != "" {
		to, err := palette.Parse(c.ColorTo)
		if err != nil {
			return render.Format{}, err
		}
		scheme = palette.Gradient{From: from, To: to}
	}

	return render.Format{
		Type:     t,
		Topology: top,
		Scheme:   scheme,
		Scale:    c.Scale,
		Strict:   c.Strict,
	}, nil
}

// Validate reports values that cannot produce a render.
func (c *Config) Validate() error {
	if err := c.Region().Validate(); err != nil {
		return err
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if c.Input == "" {
		return errors.New("no input configured")
	}
	if c.Output == "" {
		return errors.New("no output configured")
	}
	if (c.Input == "sine" || c.Input == "mic") && c.Seconds <= 0 {
		return fmt.Errorf("seconds must be positive, got %g", c.Seconds)
	}
	if _, err := c.Format(); err != nil {
		return err
	}
	return nil
}
