package items

import (
	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/errors"
	"codeberg.org/ashpool/sysbar/internal/logger"
	"codeberg.org/ashpool/sysbar/internal/scheduler"
)

// Manager owns the ordered set of active items. Items whose backend
// is unavailable on this host (no battery, no thermal zones, no
// system bus) are omitted, not errors: a desktop without a battery
// simply has no battery item.
type Manager struct {
	items []*Item
	cache *Cache
}

// Build constructs one item per enabled name, preserving the
// configured order. The config must already be resolved; unknown
// names are rejected there, before Build runs.
func Build(cfg *config.Config) *Manager {
	m := &Manager{cache: NewCache()}

	seen := make(map[string]bool, len(cfg.Items))
	for _, name := range cfg.Items {
		if seen[name] {
			logger.Warn().Str("item", name).Msg("duplicate item in config, skipping")
			continue
		}
		seen[name] = true

		item, err := m.newItem(name, cfg)
		if err != nil {
			logger.Info().Str("item", name).Err(err).Msg("item unavailable, skipping")
			continue
		}
		m.items = append(m.items, item)
	}

	return m
}

func (m *Manager) newItem(name string, cfg *config.Config) (*Item, error) {
	mods := cfg.Modules

	switch name {
	case "clock":
		return NewItem(name, mods.Clock.Interval(), mods.Clock.Icon, newClockBackend(mods.Clock)), nil

	case "battery":
		backend, err := newBatteryBackend(mods.Battery, m.cache)
		if err != nil {
			return nil, err
		}
		return NewItem(name, mods.Battery.Interval(), mods.Battery.Icon, backend), nil

	case "cpu":
		return NewItem(name, mods.CPU.Interval(), mods.CPU.Icon, newCPUBackend()), nil

	case "mem":
		return NewItem(name, mods.Mem.Interval(), mods.Mem.Icon, newMemBackend()), nil

	case "temp":
		backend, err := newTempBackend(mods.Temp, m.cache)
		if err != nil {
			return nil, err
		}
		return NewItem(name, mods.Temp.Interval(), mods.Temp.Icon, backend), nil

	default:
		return nil, errors.New().WithData(errors.ErrUnknownItem, name)
	}
}

// newBatteryBackend resolves the configured backend selector once,
// at construction.
func newBatteryBackend(cfg config.BatteryConfig, cache *Cache) (Backend, error) {
	switch cfg.Backend {
	case config.BatteryBackendUpower:
		return newUpowerBattery()
	default:
		return newSysfsBattery(cfg, cache)
	}
}

func newTempBackend(cfg config.TempConfig, cache *Cache) (Backend, error) {
	switch cfg.Backend {
	case config.TempBackendHwmon:
		return newHwmonBackend(cfg, cache)
	case config.TempBackendGopsutil:
		return newGopsutilBackend(cfg, cache)
	default:
		return newThermalZoneBackend(cfg, cache)
	}
}

// Items returns the active items as a read-only ordered view.
func (m *Manager) Items() []*Item {
	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// StartAll registers every item with the scheduler. A failed start is
// absorbed: the item is dropped from the active set and logged, the
// rest keep running.
func (m *Manager) StartAll(s *scheduler.Scheduler) {
	active := m.items[:0]
	for _, item := range m.items {
		if err := item.Start(s); err != nil {
			logger.Warn().Str("item", item.Name()).Err(err).Msg("failed to start item")
			continue
		}
		active = append(active, item)
	}
	m.items = active
}

// StopAll deregisters every item's pending timer.
func (m *Manager) StopAll(s *scheduler.Scheduler) {
	for _, item := range m.items {
		item.Stop(s)
	}
}
