package items

import (
	"fmt"
	"strings"
	"time"
)

// Sample is one immutable poll result. Exactly one of three shapes:
// a typed reading, a typed failure (Err set), or neither when the
// source needs more than one observation before it can report a
// value ("no data yet", e.g. the first CPU poll).
type Sample struct {
	At      time.Time
	Reading Reading
	Err     error
}

// OK reports whether the sample carries a usable reading.
func (s Sample) OK() bool {
	return s.Err == nil && s.Reading != nil
}

// Reading is a typed metric value. The set of implementations is
// closed: one per item kind.
type Reading interface {
	// Text renders the reading for display. The result is a pure
	// function of the reading: repeated calls return identical text.
	Text() string
}

type ClockReading struct {
	Formatted string
}

func (r ClockReading) Text() string { return r.Formatted }

type BatteryReading struct {
	Percent int
	Status  string
}

func (r BatteryReading) Charging() bool { return r.Status == "Charging" }

func (r BatteryReading) Text() string {
	return fmt.Sprintf("%d%% %s", r.Percent, r.Status)
}

// CPUReading carries utilization as a fraction in [0, 1], computed
// from the busy-time delta between two consecutive polls.
type CPUReading struct {
	Utilization float64
}

func (r CPUReading) Text() string {
	return fmt.Sprintf("%.0f%%", r.Utilization*100)
}

type MemReading struct {
	UsedKB  uint64
	TotalKB uint64
}

// Fraction returns used memory as a fraction of total.
func (r MemReading) Fraction() float64 {
	if r.TotalKB == 0 {
		return 0
	}
	return float64(r.UsedKB) / float64(r.TotalKB)
}

func (r MemReading) Text() string {
	return fmt.Sprintf("%.0f%%", r.Fraction()*100)
}

// SensorTemp is one sensor reading in millidegrees Celsius.
type SensorTemp struct {
	Name  string
	Milli int64
}

func (s SensorTemp) Celsius() float64 { return float64(s.Milli) / 1000 }

// TempReading carries every matched sensor. Rendering shows the full
// set, space separated, in discovery order; Max is exposed for icon
// selection.
type TempReading struct {
	Sensors []SensorTemp
}

// Max returns the hottest sensor reading in millidegrees.
func (r TempReading) Max() int64 {
	var hottest int64
	for i, s := range r.Sensors {
		if i == 0 || s.Milli > hottest {
			hottest = s.Milli
		}
	}
	return hottest
}

func (r TempReading) Text() string {
	var b strings.Builder
	for i, s := range r.Sensors {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%.0f°C", s.Name, s.Celsius())
	}
	return b.String()
}
