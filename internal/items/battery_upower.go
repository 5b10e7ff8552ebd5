package items

import (
	"time"

	"codeberg.org/ashpool/sysbar/internal/errors"
	"github.com/godbus/dbus/v5"
)

const (
	upowerService     = "org.freedesktop.UPower"
	upowerPath        = dbus.ObjectPath("/org/freedesktop/UPower")
	upowerDeviceIface = "org.freedesktop.UPower.Device"

	deviceTypeBattery = uint32(2)
)

// upowerBattery queries battery state over the system bus. It yields
// the same sample shape as the sysfs backend.
type upowerBattery struct {
	device dbus.BusObject
}

func newUpowerBattery() (*upowerBattery, error) {
	errFactory := errors.New()

	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errFactory.Wrap(ErrBusUnavailable, err)
	}

	upower := conn.Object(upowerService, upowerPath)
	var paths []dbus.ObjectPath
	if err := upower.Call(upowerService+".EnumerateDevices", 0).Store(&paths); err != nil {
		return nil, errFactory.Wrap(ErrBusUnavailable, err)
	}

	for _, path := range paths {
		dev := conn.Object(upowerService, path)
		variant, err := dev.GetProperty(upowerDeviceIface + ".Type")
		if err != nil {
			continue
		}
		if typ, ok := variant.Value().(uint32); ok && typ == deviceTypeBattery {
			return &upowerBattery{device: dev}, nil
		}
	}

	return nil, errFactory.WithMessage(ErrNoBattery, "no battery devices found via UPower")
}

func (b *upowerBattery) Poll() Sample {
	now := time.Now()
	errFactory := errors.New()

	pctVar, err := b.device.GetProperty(upowerDeviceIface + ".Percentage")
	if err != nil {
		return Sample{At: now, Err: errFactory.Wrap(errors.ErrPollFailed, err)}
	}
	pct, ok := pctVar.Value().(float64)
	if !ok {
		return Sample{At: now, Err: errFactory.WithData(errors.ErrParseFailed, pctVar.Value())}
	}

	stateVar, err := b.device.GetProperty(upowerDeviceIface + ".State")
	if err != nil {
		return Sample{At: now, Err: errFactory.Wrap(errors.ErrPollFailed, err)}
	}
	state, ok := stateVar.Value().(uint32)
	if !ok {
		return Sample{At: now, Err: errFactory.WithData(errors.ErrParseFailed, stateVar.Value())}
	}

	return Sample{
		At: now,
		Reading: BatteryReading{
			Percent: int(pct),
			Status:  upowerStatus(state),
		},
	}
}

func upowerStatus(state uint32) string {
	switch state {
	case 1:
		return "Unknown"
	case 2:
		return "Charging"
	case 3:
		return "Discharging"
	case 4:
		return "Empty"
	case 5:
		return "Fully charged"
	default:
		return "Other"
	}
}
