package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysbar.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
items = ["clock", "cpu", "temp"]
refresh_secs = 5
history = true
database = "/tmp/sysbar-test.db"

[modules.clock]
refresh_secs = 1
format = "15:04"

[modules.temp]
backend = "hwmon"
sensors = ["coretemp-Package id 0"]
icon = "auto"
`)
	t.Setenv("SYSBAR_CONFIG", path)
	oldArgs := os.Args
	os.Args = []string{"sysbar"}
	defer func() { os.Args = oldArgs }()

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"clock", "cpu", "temp"}, cfg.Items)
	assert.Equal(t, 5, cfg.RefreshSecs)
	assert.True(t, cfg.History)
	assert.Equal(t, "/tmp/sysbar-test.db", cfg.Database)
	assert.Equal(t, 1, cfg.Modules.Clock.RefreshSecs, "clock override wins")
	assert.Equal(t, "15:04", cfg.Modules.Clock.Format)
	assert.Equal(t, 5, cfg.Modules.CPU.RefreshSecs, "cpu falls back to global")
	assert.Equal(t, config.TempBackendHwmon, cfg.Modules.Temp.Backend)
	assert.Equal(t, []string{"coretemp-Package id 0"}, cfg.Modules.Temp.Sensors)
	assert.Equal(t, config.IconAuto, cfg.Modules.Temp.Icon)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("SYSBAR_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	oldArgs := os.Args
	os.Args = []string{"sysbar"}
	defer func() { os.Args = oldArgs }()

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestLoadInvalidFormat(t *testing.T) {
	path := writeConfig(t, "This is not a valid TOML file\n")
	t.Setenv("SYSBAR_CONFIG", path)
	oldArgs := os.Args
	os.Args = []string{"sysbar"}
	defer func() { os.Args = oldArgs }()

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestResolveDefaults(t *testing.T) {
	cfg := &config.Config{
		Items:       []string{"clock", "mem"},
		RefreshSecs: 2,
	}
	require.NoError(t, cfg.Resolve())

	assert.Equal(t, 2, cfg.Modules.Clock.RefreshSecs)
	assert.Equal(t, 2, cfg.Modules.Battery.RefreshSecs)
	assert.Equal(t, 2, cfg.Modules.CPU.RefreshSecs)
	assert.Equal(t, 2, cfg.Modules.Mem.RefreshSecs)
	assert.Equal(t, 2, cfg.Modules.Temp.RefreshSecs)
	assert.Equal(t, config.DefaultClockFormat, cfg.Modules.Clock.Format)
	assert.Equal(t, config.BatteryBackendSysfs, cfg.Modules.Battery.Backend)
	assert.Equal(t, config.TempBackendThermalZone, cfg.Modules.Temp.Backend)
}

// Overrides must always win over the global default; absent overrides
// must always resolve to the global default.
func TestResolveOverridePrecedence(t *testing.T) {
	for global := 1; global <= 5; global++ {
		for override := 0; override <= 5; override++ {
			cfg := &config.Config{
				Items:       []string{"battery"},
				RefreshSecs: global,
			}
			cfg.Modules.Battery.RefreshSecs = override
			require.NoError(t, cfg.Resolve())

			want := override
			if override == 0 {
				want = global
			}
			assert.Equal(t, want, cfg.Modules.Battery.RefreshSecs,
				"global=%d override=%d", global, override)
		}
	}
}

func TestResolveEmptySensorsSurvive(t *testing.T) {
	// An empty sensors list means "no filter", so resolution must not
	// substitute anything for it.
	cfg := &config.Config{
		Items:       []string{"temp"},
		RefreshSecs: 1,
	}
	require.NoError(t, cfg.Resolve())
	assert.Empty(t, cfg.Modules.Temp.Sensors)
}

func TestResolveUnknownItem(t *testing.T) {
	cfg := &config.Config{
		Items:       []string{"clock", "volume"},
		RefreshSecs: 1,
	}
	err := cfg.Resolve()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrUnknownItem))
}

func TestResolveInvalidInterval(t *testing.T) {
	cfg := &config.Config{Items: []string{"clock"}}
	err := cfg.Resolve()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInterval))
}

func TestResolveInvalidBackend(t *testing.T) {
	cfg := &config.Config{
		Items:       []string{"battery"},
		RefreshSecs: 1,
	}
	cfg.Modules.Battery.Backend = "acpi"
	err := cfg.Resolve()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
}
