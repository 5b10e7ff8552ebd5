package items

import (
	"sort"
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/errors"
	"github.com/shirou/gopsutil/v3/host"
)

// gopsutilTemp reads temperatures through the gopsutil sensor
// library instead of raw sysfs. Discovery lists the sensor keys once;
// each poll re-queries the library and keeps the selected keys.
type gopsutilTemp struct {
	keys map[string]bool
}

func newGopsutilBackend(cfg config.TempConfig, cache *Cache) (*gopsutilTemp, error) {
	errFactory := errors.New()

	all, err := cached(cache, "gopsutil-sensors", func() ([]string, error) {
		temps, err := host.SensorsTemperatures()
		// gopsutil reports partial per-sensor failures as a non-nil
		// error alongside usable data; only a fully empty result
		// counts as unavailable.
		if len(temps) == 0 {
			if err != nil {
				return nil, errFactory.Wrap(ErrNoSensors, err)
			}
			return nil, errFactory.New(ErrNoSensors)
		}

		seen := make(map[string]bool, len(temps))
		keys := make([]string, 0, len(temps))
		for _, t := range temps {
			if t.SensorKey == "" || seen[t.SensorKey] {
				continue
			}
			seen[t.SensorKey] = true
			keys = append(keys, t.SensorKey)
		}
		sort.Strings(keys)
		return keys, nil
	})
	if err != nil {
		return nil, err
	}

	selected := all
	if len(cfg.Sensors) > 0 {
		wanted := make(map[string]bool, len(cfg.Sensors))
		for _, name := range cfg.Sensors {
			wanted[name] = true
		}
		selected = selected[:0:0]
		for _, key := range all {
			if wanted[key] {
				selected = append(selected, key)
			}
		}
		if len(selected) == 0 {
			return nil, errFactory.WithData(ErrNoSensorMatch, cfg.Sensors)
		}
	}

	keys := make(map[string]bool, len(selected))
	for _, key := range selected {
		keys[key] = true
	}

	return &gopsutilTemp{keys: keys}, nil
}

func (b *gopsutilTemp) Poll() Sample {
	now := time.Now()
	errFactory := errors.New()

	temps, err := host.SensorsTemperatures()
	if len(temps) == 0 {
		if err != nil {
			return Sample{At: now, Err: errFactory.Wrap(errors.ErrPollFailed, err)}
		}
		return Sample{At: now, Err: errFactory.WithMessage(errors.ErrPollFailed, "no sensor readings")}
	}

	readings := make([]SensorTemp, 0, len(b.keys))
	for _, t := range temps {
		if !b.keys[t.SensorKey] {
			continue
		}
		readings = append(readings, SensorTemp{
			Name:  t.SensorKey,
			Milli: int64(t.Temperature * 1000),
		})
	}
	if len(readings) == 0 {
		return Sample{At: now, Err: errFactory.WithMessage(errors.ErrPollFailed, "selected sensors missing from this scan")}
	}

	return Sample{At: now, Reading: TempReading{Sensors: readings}}
}
