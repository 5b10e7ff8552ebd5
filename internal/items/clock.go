package items

import (
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
)

// clockBackend formats the current local time. No external I/O, no
// discovery; the cadence comes entirely from the scheduler.
type clockBackend struct {
	layout string
	now    func() time.Time
}

func newClockBackend(cfg config.ClockConfig) *clockBackend {
	return &clockBackend{
		layout: cfg.Format,
		now:    time.Now,
	}
}

func (b *clockBackend) Poll() Sample {
	ts := b.now()
	return Sample{
		At:      ts,
		Reading: ClockReading{Formatted: ts.Format(b.layout)},
	}
}
