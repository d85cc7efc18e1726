package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d1nch8g/waveform/geometry"
	"github.com/d1nch8g/waveform/palette"
	"github.com/d1nch8g/waveform/sampler"
	"github.com/d1nch8g/waveform/vertex"
)

// chdir moves into an empty directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WAVEFORM_WIDTH=320\nWAVEFORM_TYPE=logarithmic\n"), 0o644))
	t.Setenv("WAVEFORM_HEIGHT", "64")
	t.Setenv("WAVEFORM_STRICT", "true")
	t.Setenv("WAVEFORM_BATCH_SIZE", "128")
	t.Cleanup(func() {
		os.Unsetenv("WAVEFORM_WIDTH")
		os.Unsetenv("WAVEFORM_TYPE")
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, geometry.Region{Width: 320, Height: 64}, cfg.Region())
	assert.Equal(t, "logarithmic", cfg.Type)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 128, cfg.BatchSize)

	format, err := cfg.Format()
	require.NoError(t, err)
	assert.Equal(t, sampler.Logarithmic(-50), format.Type)
	assert.True(t, format.Strict)
}

func TestLoadConfigBadEnv(t *testing.T) {
	chdir(t)
	t.Setenv("WAVEFORM_SCALE", "wide")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "waveform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input: song.mp3
width: 1024
topology: mirrored
color: "#ff0000"
color_to: "#0000ff"
`), 0o644))
	t.Setenv("WAVEFORM_CONFIG", path)
	t.Setenv("WAVEFORM_OUTPUT", "song.bin")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "song.mp3", cfg.Input)
	assert.Equal(t, "song.bin", cfg.Output)
	assert.Equal(t, float32(1024), cfg.Width)
	assert.Equal(t, float32(200), cfg.Height, "unset keys keep their defaults")

	format, err := cfg.Format()
	require.NoError(t, err)
	assert.Equal(t, geometry.Mirrored, format.Topology)
	assert.Equal(t, palette.Gradient{From: vertex.Vec3{1, 0, 0}, To: vertex.Vec3{0, 0, 1}}, format.Scheme)

	assert.Error(t, cfg.LoadFile(filepath.Join(dir, "missing.yaml")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -5 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"no input", func(c *Config) { c.Input = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"no duration", func(c *Config) { c.Seconds = 0 }},
		{"bad type", func(c *Config) { c.Type = "cubic" }},
		{"bad topology", func(c *Config) { c.Topology = "strip" }},
		{"bad color", func(c *Config) { c.Color = "red" }},
		{"bad gradient", func(c *Config) { c.ColorTo = "#12" }},
		{"zero noise floor", func(c *Config) { c.Type = "logarithmic"; c.NoiseFloor = 0 }},
		{"positive noise floor", func(c *Config) { c.Type = "logarithmic(6)" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	require.NoError(t, cfg.Validate())

	// the floor only matters on a logarithmic scale
	cfg.NoiseFloor = 0
	assert.NoError(t, cfg.Validate())
	cfg.Type = "logarithmic(-40)"
	assert.NoError(t, cfg.Validate(), "explicit floor overrides the setting")
}
