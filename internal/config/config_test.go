package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 4000*time.Millisecond, cfg.Toast.DefaultDuration.Duration())
	assert.Equal(t, 100*time.Millisecond, cfg.Toast.EntranceDelay.Duration())
	assert.Equal(t, 300*time.Millisecond, cfg.Toast.ExitDuration.Duration())
	assert.Equal(t, "terminal", cfg.Display.Surface)
	assert.Equal(t, DefaultWidth, cfg.Display.Width)
	assert.True(t, cfg.Welcome.Enabled)
	assert.Equal(t, 1500, cfg.Welcome.Delay.Milliseconds())
	assert.NotEmpty(t, cfg.Welcome.Message)
	assert.Equal(t, 2*time.Second, cfg.Contact.SubmitDelay.Duration())
	assert.Zero(t, cfg.Feedback.MinInterval.Duration(), "feedback is not rate limited by default")
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[toast]
default_duration = "5s"
entrance_delay = "50ms"
exit_duration = "250"

[display]
surface = "desktop"
width = 400
app_name = "portfolio"

[welcome]
enabled = false
message = "hi"

[contact]
submit_delay = "1s"

[feedback]
min_interval = "2s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Toast.DefaultDuration.Duration())
	assert.Equal(t, 50*time.Millisecond, cfg.Toast.EntranceDelay.Duration())
	assert.Equal(t, 250*time.Millisecond, cfg.Toast.ExitDuration.Duration())
	assert.Equal(t, "desktop", cfg.Display.Surface)
	assert.Equal(t, 400, cfg.Display.Width)
	assert.Equal(t, "portfolio", cfg.Display.AppName)
	assert.False(t, cfg.Welcome.Enabled)
	assert.Equal(t, "hi", cfg.Welcome.Message)
	assert.Equal(t, time.Second, cfg.Contact.SubmitDelay.Duration())
	assert.Equal(t, 2*time.Second, cfg.Feedback.MinInterval.Duration())
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[toast]
default_duration = "6s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6*time.Second, cfg.Toast.DefaultDuration.Duration())

	// Unchanged fields keep defaults
	assert.Equal(t, DefaultExitDuration, cfg.Toast.ExitDuration.Duration())
	assert.Equal(t, "terminal", cfg.Display.Surface)
	assert.True(t, cfg.Welcome.Enabled)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[toast]\ndefault_duration = \"soon\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nsurface = \"html\"\n"), 0644))

	t.Setenv("FOLIO_TOAST_DEFAULT_DURATION", "7s")
	t.Setenv("FOLIO_DISPLAY_SURFACE", "desktop")
	t.Setenv("FOLIO_WELCOME_ENABLED", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7*time.Second, cfg.Toast.DefaultDuration.Duration())
	assert.Equal(t, "desktop", cfg.Display.Surface)
	assert.False(t, cfg.Welcome.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown surface", func(c *Config) { c.Display.Surface = "gtk" }, true},
		{"width too small", func(c *Config) { c.Display.Width = 5 }, true},
		{"width too large", func(c *Config) { c.Display.Width = 5000 }, true},
		{"zero default duration", func(c *Config) { c.Toast.DefaultDuration = 0 }, true},
		{"negative exit", func(c *Config) { c.Toast.ExitDuration = Duration(-time.Millisecond) }, true},
		{"zero entrance allowed", func(c *Config) { c.Toast.EntranceDelay = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"4000", 4 * time.Second, false},
		{"300ms", 300 * time.Millisecond, false},
		{"1m30s", 90 * time.Second, false},
		{"0", 0, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Toast.DefaultDuration = Duration(8 * time.Second)
	cfg.Display.Surface = string(SurfaceHTML)

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Second, loaded.Toast.DefaultDuration.Duration())
	assert.Equal(t, "html", loaded.Display.Surface)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/folio/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "folio/config.toml")
}
