package config

import (
	"os"
	"time"

	"codeberg.org/ashpool/sysbar/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultRefreshSecs = 1
	DefaultClockFormat = "15:04:05"

	// IconAuto requests dynamic icon selection from the latest reading.
	// Any other non-empty icon value is a static icon identifier.
	IconAuto = "auto"
)

// Battery backend selectors
const (
	BatteryBackendSysfs  = "sysfs"
	BatteryBackendUpower = "upower"
)

// Temperature backend selectors
const (
	TempBackendThermalZone = "thermal_zone"
	TempBackendHwmon       = "hwmon"
	TempBackendGopsutil    = "gopsutil"
)

// Config is the fully merged configuration: the global section plus one
// override section per module. After Resolve() every field holds a final
// concrete value.
type Config struct {
	// Which items to enable in the bar, in order
	Items []string `mapstructure:"items"`

	// Default refresh interval for items that poll (in seconds)
	RefreshSecs int `mapstructure:"refresh_secs"`

	Debug   bool `mapstructure:"debug"`
	Verbose bool `mapstructure:"verbose"`

	// Sample history (sqlite)
	History  bool   `mapstructure:"history"`
	Database string `mapstructure:"database"`

	Modules Modules `mapstructure:"modules"`
}

type Modules struct {
	Clock   ClockConfig   `mapstructure:"clock"`
	Battery BatteryConfig `mapstructure:"battery"`
	CPU     CPUConfig     `mapstructure:"cpu"`
	Mem     MemConfig     `mapstructure:"mem"`
	Temp    TempConfig    `mapstructure:"temp"`
}

type ClockConfig struct {
	RefreshSecs int    `mapstructure:"refresh_secs"`
	Format      string `mapstructure:"format"`
	Icon        string `mapstructure:"icon"`
}

type BatteryConfig struct {
	RefreshSecs int    `mapstructure:"refresh_secs"`
	Backend     string `mapstructure:"backend"`
	Device      string `mapstructure:"device"`
	Icon        string `mapstructure:"icon"`
}

type CPUConfig struct {
	RefreshSecs int    `mapstructure:"refresh_secs"`
	Icon        string `mapstructure:"icon"`
}

type MemConfig struct {
	RefreshSecs int    `mapstructure:"refresh_secs"`
	Icon        string `mapstructure:"icon"`
}

type TempConfig struct {
	RefreshSecs int    `mapstructure:"refresh_secs"`
	Backend     string `mapstructure:"backend"`
	// Sensor name filter. An empty list means "no filter": every
	// discovered sensor is selected, never none.
	Sensors []string `mapstructure:"sensors"`
	Icon    string   `mapstructure:"icon"`
}

func (c ClockConfig) Interval() time.Duration   { return time.Duration(c.RefreshSecs) * time.Second }
func (c BatteryConfig) Interval() time.Duration { return time.Duration(c.RefreshSecs) * time.Second }
func (c CPUConfig) Interval() time.Duration     { return time.Duration(c.RefreshSecs) * time.Second }
func (c MemConfig) Interval() time.Duration     { return time.Duration(c.RefreshSecs) * time.Second }
func (c TempConfig) Interval() time.Duration    { return time.Duration(c.RefreshSecs) * time.Second }

var knownItems = map[string]bool{
	"clock":   true,
	"battery": true,
	"cpu":     true,
	"mem":     true,
	"temp":    true,
}

// Load reads configuration from flags, environment and the TOML config
// file, then validates and resolves it.
func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("sysbar", pflag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	debugFlag := fs.Bool("debug", false, "Enable debug logging")
	verboseFlag := fs.Bool("verbose", false, "Enable verbose logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetConfigName("sysbar")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	v.AddConfigPath("$XDG_CONFIG_HOME/sysbar")
	v.AddConfigPath("$HOME/.config/sysbar")
	setDefaults(v)

	path := *configPath
	if path == "" {
		path = os.Getenv("SYSBAR_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file on the search path is fine; an explicitly
		// requested file must exist.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	cfg.Debug = cfg.Debug || *debugFlag
	cfg.Verbose = cfg.Verbose || *verboseFlag

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}

	applyLogLevel(cfg)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("items", []string{})
	v.SetDefault("refresh_secs", DefaultRefreshSecs)
	v.SetDefault("modules.clock.format", DefaultClockFormat)
	v.SetDefault("modules.battery.backend", BatteryBackendSysfs)
	v.SetDefault("modules.temp.backend", TempBackendThermalZone)
}

// Resolve validates the global section and fills every unset module
// option from its global default. After a successful Resolve no
// optionality remains: every module carries a concrete refresh interval,
// backend selector and format.
func (c *Config) Resolve() error {
	if err := c.validate(); err != nil {
		return err
	}

	fill := func(secs *int) {
		if *secs == 0 {
			*secs = c.RefreshSecs
		}
	}
	fill(&c.Modules.Clock.RefreshSecs)
	fill(&c.Modules.Battery.RefreshSecs)
	fill(&c.Modules.CPU.RefreshSecs)
	fill(&c.Modules.Mem.RefreshSecs)
	fill(&c.Modules.Temp.RefreshSecs)

	if c.Modules.Clock.Format == "" {
		c.Modules.Clock.Format = DefaultClockFormat
	}
	if c.Modules.Battery.Backend == "" {
		c.Modules.Battery.Backend = BatteryBackendSysfs
	}
	if c.Modules.Temp.Backend == "" {
		c.Modules.Temp.Backend = TempBackendThermalZone
	}

	return nil
}

func (c *Config) validate() error {
	errFactory := errors.New()

	if c.RefreshSecs < 1 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.RefreshSecs)
	}

	for _, name := range c.Items {
		if !knownItems[name] {
			return errFactory.WithData(errors.ErrUnknownItem, name)
		}
	}

	for _, secs := range []int{
		c.Modules.Clock.RefreshSecs,
		c.Modules.Battery.RefreshSecs,
		c.Modules.CPU.RefreshSecs,
		c.Modules.Mem.RefreshSecs,
		c.Modules.Temp.RefreshSecs,
	} {
		if secs < 0 {
			return errFactory.WithData(errors.ErrInvalidInterval, secs)
		}
	}

	switch c.Modules.Battery.Backend {
	case "", BatteryBackendSysfs, BatteryBackendUpower:
	default:
		return errFactory.WithData(errors.ErrInvalidConfig, c.Modules.Battery.Backend)
	}

	switch c.Modules.Temp.Backend {
	case "", TempBackendThermalZone, TempBackendHwmon, TempBackendGopsutil:
	default:
		return errFactory.WithData(errors.ErrInvalidConfig, c.Modules.Temp.Backend)
	}

	if c.History && c.Database == "" {
		return errFactory.New(errors.ErrMissingConfig).WithMessage("history enabled but no database path set")
	}

	return nil
}

func applyLogLevel(cfg *Config) {
	switch {
	case cfg.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case cfg.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
