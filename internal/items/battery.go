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

const defaultPowerSupplyBase = "/sys/class/power_supply"

func powerSupplyBase() string {
	if v := os.Getenv("SYS_POWER_SUPPLY_BASE"); v != "" {
		return v
	}
	return defaultPowerSupplyBase
}

// sysfsBattery reads capacity and charging status from one
// power-supply node.
type sysfsBattery struct {
	path string
}

func newSysfsBattery(cfg config.BatteryConfig, cache *Cache) (*sysfsBattery, error) {
	base := powerSupplyBase()

	if cfg.Device != "" {
		path := filepath.Join(base, cfg.Device)
		if _, err := os.Stat(filepath.Join(path, "capacity")); err != nil {
			return nil, errors.New().Wrap(ErrNoBattery, err)
		}
		return &sysfsBattery{path: path}, nil
	}

	path, err := cached(cache, "power-supply:"+base, func() (string, error) {
		return discoverBattery(base)
	})
	if err != nil {
		return nil, err
	}

	return &sysfsBattery{path: path}, nil
}

// discoverBattery scans the power-supply tree for the first node
// whose type is Battery.
func discoverBattery(base string) (string, error) {
	errFactory := errors.New()

	entries, err := os.ReadDir(base)
	if err != nil {
		return "", errFactory.Wrap(ErrNoBattery, err)
	}

	for _, entry := range entries {
		path := filepath.Join(base, entry.Name())
		typ, err := os.ReadFile(filepath.Join(path, "type"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(typ)) == "Battery" {
			return path, nil
		}
	}

	return "", errFactory.WithData(ErrNoBattery, base)
}

func (b *sysfsBattery) Poll() Sample {
	now := time.Now()
	errFactory := errors.New()

	capRaw, err := os.ReadFile(filepath.Join(b.path, "capacity"))
	if err != nil {
		return Sample{At: now, Err: errFactory.Wrap(errors.ErrPollFailed, err)}
	}
	percent, err := strconv.Atoi(strings.TrimSpace(string(capRaw)))
	if err != nil {
		return Sample{At: now, Err: errFactory.Wrap(errors.ErrParseFailed, err)}
	}

	statusRaw, err := os.ReadFile(filepath.Join(b.path, "status"))
	if err != nil {
		return Sample{At: now, Err: errFactory.Wrap(errors.ErrPollFailed, err)}
	}

	return Sample{
		At: now,
		Reading: BatteryReading{
			Percent: percent,
			Status:  strings.TrimSpace(string(statusRaw)),
		},
	}
}
