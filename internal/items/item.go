package items

import (
	"sync"
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/errors"
	"codeberg.org/ashpool/sysbar/internal/logger"
	"codeberg.org/ashpool/sysbar/internal/scheduler"
)

// staleThreshold is the number of consecutive poll failures after
// which an item reports itself stale.
const staleThreshold = 3

const placeholderText = "N/A"

// Item combines one backend with its resolved configuration and the
// presentation-facing contract: Name, Render, Start. It keeps the
// last successful sample so a transient failure shows the last good
// value instead of going blank.
type Item struct {
	name     string
	interval time.Duration
	icon     string
	backend  Backend

	mu       sync.RWMutex
	last     Sample
	hasData  bool
	failures int
}

func NewItem(name string, interval time.Duration, icon string, backend Backend) *Item {
	return &Item{
		name:     name,
		interval: interval,
		icon:     icon,
		backend:  backend,
	}
}

func (it *Item) Name() string { return it.name }

func (it *Item) Interval() time.Duration { return it.interval }

// Poll runs one backend read and folds the sample into the item
// state. Failures are counted but never propagate: the scheduler
// retries on the next tick regardless.
func (it *Item) Poll() {
	s := it.backend.Poll()

	it.mu.Lock()
	defer it.mu.Unlock()

	if s.Err != nil {
		it.failures++
		logger.Debug().
			Str("item", it.name).
			Int("consecutive_failures", it.failures).
			Err(s.Err).
			Msg("poll failed")
		return
	}

	it.failures = 0
	if s.Reading != nil {
		it.last = s
		it.hasData = true
	}
}

// Failures returns the consecutive poll failure count.
func (it *Item) Failures() int {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.failures
}

// Stale reports whether the displayed value should be marked stale.
func (it *Item) Stale() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.failures >= staleThreshold
}

// Render returns the current displayable state. Absent a new poll,
// repeated calls return identical state; the text always reflects
// the last successful sample.
func (it *Item) Render() RenderState {
	it.mu.RLock()
	defer it.mu.RUnlock()

	text := placeholderText
	if it.hasData {
		text = it.last.Reading.Text()
	}

	return RenderState{
		Text:  text,
		Icon:  it.renderIcon(),
		Stale: it.failures >= staleThreshold,
	}
}

func (it *Item) renderIcon() string {
	switch it.icon {
	case "":
		return ""
	case config.IconAuto:
		if it.hasData {
			return autoIcon(it.last.Reading)
		}
		return ""
	default:
		return it.icon
	}
}

// Start registers the item's poll step with the scheduler at its
// resolved interval.
func (it *Item) Start(s *scheduler.Scheduler) error {
	if err := s.Register(it.name, it.interval, it.Poll); err != nil {
		return errors.New().Wrap(errors.ErrInitFailed, err)
	}
	return nil
}

// Stop deregisters the item's pending timer. Idempotent.
func (it *Item) Stop(s *scheduler.Scheduler) {
	s.Deregister(it.name)
}
