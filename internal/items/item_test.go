package items

import (
	"testing"
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/errors"
	"codeberg.org/ashpool/sysbar/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend replays a fixed sequence of samples, repeating the last
// one once exhausted.
type stubBackend struct {
	samples []Sample
	i       int
}

func (b *stubBackend) Poll() Sample {
	if len(b.samples) == 0 {
		return Sample{At: time.Now()}
	}
	s := b.samples[b.i]
	if b.i < len(b.samples)-1 {
		b.i++
	}
	return s
}

func failing(code errors.ErrorCode) Sample {
	return Sample{At: time.Now(), Err: errors.New().New(code)}
}

func TestItemPlaceholderBeforeFirstData(t *testing.T) {
	item := NewItem("cpu", time.Second, "", &stubBackend{})

	state := item.Render()
	assert.Equal(t, "N/A", state.Text)
	assert.Empty(t, state.Icon)
	assert.False(t, state.Stale)
}

func TestItemStaleAfterConsecutiveFailures(t *testing.T) {
	backend := &stubBackend{samples: []Sample{
		{Reading: CPUReading{Utilization: 0.5}},
		failing(errors.ErrPollFailed),
	}}
	item := NewItem("cpu", time.Second, "", backend)

	item.Poll()
	require.False(t, item.Stale())

	item.Poll()
	item.Poll()
	assert.False(t, item.Stale(), "two failures are still fresh")

	item.Poll()
	assert.True(t, item.Stale())
	assert.Equal(t, 3, item.Failures())

	// The last good value survives the failure streak.
	state := item.Render()
	assert.Equal(t, "50%", state.Text)
	assert.True(t, state.Stale)
}

func TestItemRecoveryResetsFailures(t *testing.T) {
	backend := &stubBackend{samples: []Sample{
		failing(errors.ErrPollFailed),
		failing(errors.ErrPollFailed),
		failing(errors.ErrPollFailed),
		{Reading: MemReading{UsedKB: 500, TotalKB: 1000}},
	}}
	item := NewItem("mem", time.Second, "", backend)

	for i := 0; i < 3; i++ {
		item.Poll()
	}
	require.True(t, item.Stale())

	item.Poll()
	assert.False(t, item.Stale())
	assert.Zero(t, item.Failures())
	assert.Equal(t, "50%", item.Render().Text)
}

// A "no data yet" sample is neither a failure nor a displayable value.
func TestItemNoDataSample(t *testing.T) {
	item := NewItem("cpu", time.Second, "", &stubBackend{})

	for i := 0; i < 5; i++ {
		item.Poll()
	}
	assert.Zero(t, item.Failures())
	assert.False(t, item.Stale())
	assert.Equal(t, "N/A", item.Render().Text)
}

func TestItemStaticIcon(t *testing.T) {
	backend := &stubBackend{samples: []Sample{{Reading: ClockReading{Formatted: "12:00:00"}}}}
	item := NewItem("clock", time.Second, "clock-symbolic", backend)
	item.Poll()

	assert.Equal(t, "clock-symbolic", item.Render().Icon)
}

func TestItemAutoIcon(t *testing.T) {
	backend := &stubBackend{samples: []Sample{
		{Reading: BatteryReading{Percent: 95, Status: "Discharging"}},
	}}
	item := NewItem("battery", time.Second, config.IconAuto, backend)

	// No data yet: auto resolves to no icon rather than guessing.
	assert.Empty(t, item.Render().Icon)

	item.Poll()
	assert.Equal(t, "battery-full", item.Render().Icon)
}

func TestBatteryIconBuckets(t *testing.T) {
	cases := []struct {
		percent int
		status  string
		want    string
	}{
		{50, "Charging", "battery-charging"},
		{95, "Discharging", "battery-full"},
		{60, "Discharging", "battery-good"},
		{30, "Discharging", "battery-low"},
		{10, "Discharging", "battery-caution"},
		{5, "Discharging", "battery-empty"},
	}
	for _, tc := range cases {
		got := batteryIcon(BatteryReading{Percent: tc.percent, Status: tc.status})
		assert.Equal(t, tc.want, got, "%d%% %s", tc.percent, tc.status)
	}
}

func TestTempAutoIconBuckets(t *testing.T) {
	hot := TempReading{Sensors: []SensorTemp{{Name: "pkg", Milli: 85000}}}
	warm := TempReading{Sensors: []SensorTemp{{Name: "pkg", Milli: 65000}}}
	cool := TempReading{Sensors: []SensorTemp{{Name: "pkg", Milli: 40000}}}

	assert.Equal(t, "temperature-high", autoIcon(hot))
	assert.Equal(t, "temperature-warm", autoIcon(warm))
	assert.Equal(t, "temperature-normal", autoIcon(cool))
}

func TestItemStartStop(t *testing.T) {
	sched := scheduler.New(nil)
	backend := &stubBackend{samples: []Sample{{Reading: ClockReading{Formatted: "12:00:00"}}}}
	item := NewItem("clock", time.Second, "", backend)

	require.NoError(t, item.Start(sched))
	assert.Error(t, item.Start(sched), "double start is a duplicate registration")

	sched.Tick(time.Now().Add(2 * time.Second))
	assert.Equal(t, "12:00:00", item.Render().Text)

	item.Stop(sched)
	item.Stop(sched)
	assert.Zero(t, sched.Tick(time.Now().Add(time.Hour)))
}
