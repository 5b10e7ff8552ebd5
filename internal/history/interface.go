package history

import (
	"context"
	"time"
)

// Recorder persists one row per item per scheduler tick so render
// state can be inspected after the fact.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	Close() error
}

// Entry is one recorded render state.
type Entry struct {
	At       time.Time
	Item     string
	Text     string
	Stale    bool
	Failures int
}
