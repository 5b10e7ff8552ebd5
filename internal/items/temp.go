package items

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/errors"
)

const (
	defaultThermalBase = "/sys/class/thermal"
	defaultHwmonBase   = "/sys/class/hwmon"
)

func thermalBase() string {
	if v := os.Getenv("SYS_THERMAL_BASE"); v != "" {
		return v
	}
	return defaultThermalBase
}

func hwmonBase() string {
	if v := os.Getenv("SYS_HWMON_BASE"); v != "" {
		return v
	}
	return defaultHwmonBase
}

// sensorRef names one temperature source file.
type sensorRef struct {
	name string
	path string
}

// filterSensors applies the configured sensor name filter. An empty
// filter selects every discovered sensor; a filter matching nothing
// is an availability error.
func filterSensors(all []sensorRef, wanted []string) ([]sensorRef, error) {
	if len(wanted) == 0 {
		return all, nil
	}

	set := make(map[string]bool, len(wanted))
	for _, name := range wanted {
		set[name] = true
	}

	matched := make([]sensorRef, 0, len(wanted))
	for _, s := range all {
		if set[s.name] {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return nil, errors.New().WithData(ErrNoSensorMatch, wanted)
	}

	return matched, nil
}

// sysfsTemp reads millidegree values from sysfs sensor files; it
// serves both the thermal-zone and the hwmon source kinds, which
// differ only in discovery.
type sysfsTemp struct {
	sensors []sensorRef
}

func newThermalZoneBackend(cfg config.TempConfig, cache *Cache) (*sysfsTemp, error) {
	base := thermalBase()
	all, err := cached(cache, "thermal-zones:"+base, func() ([]sensorRef, error) {
		return discoverThermalZones(base)
	})
	if err != nil {
		return nil, err
	}

	sensors, err := filterSensors(all, cfg.Sensors)
	if err != nil {
		return nil, err
	}
	return &sysfsTemp{sensors: sensors}, nil
}

func newHwmonBackend(cfg config.TempConfig, cache *Cache) (*sysfsTemp, error) {
	base := hwmonBase()
	all, err := cached(cache, "hwmon-sensors:"+base, func() ([]sensorRef, error) {
		return discoverHwmonSensors(base)
	})
	if err != nil {
		return nil, err
	}

	sensors, err := filterSensors(all, cfg.Sensors)
	if err != nil {
		return nil, err
	}
	return &sysfsTemp{sensors: sensors}, nil
}

// discoverThermalZones enumerates thermal_zone* directories, naming
// each zone by its type file.
func discoverThermalZones(base string) ([]sensorRef, error) {
	errFactory := errors.New()

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, errFactory.Wrap(ErrNoSensors, err)
	}

	var zones []sensorRef
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "thermal_zone") {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		typ, err := os.ReadFile(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		tempPath := filepath.Join(dir, "temp")
		if _, err := os.Stat(tempPath); err != nil {
			continue
		}
		zones = append(zones, sensorRef{
			name: strings.TrimSpace(string(typ)),
			path: tempPath,
		})
	}
	if len(zones) == 0 {
		return nil, errFactory.WithData(ErrNoSensors, base)
	}

	return zones, nil
}

// discoverHwmonSensors enumerates temp*_input files across hwmon
// chips. Sensors are named "<chip>-<label>", with the file name as
// label fallback.
func discoverHwmonSensors(base string) ([]sensorRef, error) {
	errFactory := errors.New()

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, errFactory.Wrap(ErrNoSensors, err)
	}

	var sensors []sensorRef
	for _, entry := range entries {
		dir := filepath.Join(base, entry.Name())

		chip := "hwmon"
		if raw, err := os.ReadFile(filepath.Join(dir, "name")); err == nil {
			chip = strings.TrimSpace(string(raw))
		}

		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			fname := f.Name()
			if !strings.HasPrefix(fname, "temp") || !strings.HasSuffix(fname, "_input") {
				continue
			}
			label := fname
			labelFile := filepath.Join(dir, strings.Replace(fname, "_input", "_label", 1))
			if raw, err := os.ReadFile(labelFile); err == nil {
				label = strings.TrimSpace(string(raw))
			}
			sensors = append(sensors, sensorRef{
				name: chip + "-" + label,
				path: filepath.Join(dir, fname),
			})
		}
	}
	if len(sensors) == 0 {
		return nil, errFactory.WithData(ErrNoSensors, base)
	}

	return sensors, nil
}

func (b *sysfsTemp) Poll() Sample {
	now := time.Now()
	errFactory := errors.New()

	readings := make([]SensorTemp, 0, len(b.sensors))
	for _, s := range b.sensors {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return Sample{At: now, Err: errFactory.Wrap(errors.ErrPollFailed, err)}
		}
		milli, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return Sample{At: now, Err: errFactory.Wrap(errors.ErrParseFailed, err)}
		}
		readings = append(readings, SensorTemp{Name: s.name, Milli: milli})
	}

	return Sample{At: now, Reading: TempReading{Sensors: readings}}
}
