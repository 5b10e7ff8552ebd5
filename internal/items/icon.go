package items

// Dynamic icon selection for icon = "auto": map the latest reading to
// a themed icon name. The sink resolves the name against its icon
// theme; this stays pure string logic.

const (
	tempHighMilli = 80000
	tempWarmMilli = 60000
)

func autoIcon(r Reading) string {
	switch v := r.(type) {
	case BatteryReading:
		return batteryIcon(v)
	case TempReading:
		switch {
		case v.Max() >= tempHighMilli:
			return "temperature-high"
		case v.Max() >= tempWarmMilli:
			return "temperature-warm"
		default:
			return "temperature-normal"
		}
	default:
		return ""
	}
}

func batteryIcon(r BatteryReading) string {
	if r.Charging() {
		return "battery-charging"
	}
	switch {
	case r.Percent >= 90:
		return "battery-full"
	case r.Percent >= 60:
		return "battery-good"
	case r.Percent >= 30:
		return "battery-low"
	case r.Percent >= 10:
		return "battery-caution"
	default:
		return "battery-empty"
	}
}
