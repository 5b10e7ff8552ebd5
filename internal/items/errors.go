package items

import "codeberg.org/ashpool/sysbar/internal/errors"

const (
	// Availability errors (item is silently omitted)
	ErrNoBattery      = errors.ErrorCode("battery_not_found")
	ErrBusUnavailable = errors.ErrorCode("system_bus_unavailable")
	ErrNoSensors      = errors.ErrorCode("no_temperature_sensors")
	ErrNoSensorMatch  = errors.ErrorCode("no_sensors_match_filter")
)
