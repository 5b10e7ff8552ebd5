package items

import (
	"testing"
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockPollFormats(t *testing.T) {
	b := newClockBackend(config.ClockConfig{Format: "15:04:05"})
	b.now = func() time.Time {
		return time.Date(2024, 6, 1, 9, 30, 15, 0, time.Local)
	}

	s := b.Poll()
	require.True(t, s.OK())
	assert.Equal(t, "09:30:15", s.Reading.Text())
}

func TestClockCustomLayout(t *testing.T) {
	b := newClockBackend(config.ClockConfig{Format: "Mon 02 Jan 15:04"})
	b.now = func() time.Time {
		return time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)
	}

	s := b.Poll()
	require.True(t, s.OK())
	assert.Equal(t, "Sat 01 Jun 09:30", s.Reading.Text())
}
