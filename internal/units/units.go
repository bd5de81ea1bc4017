// Package units converts distances and speeds from SI units for display.
package units

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DistUnit is the unit distances and elevations are displayed in.
type DistUnit int

const (
	Metres DistUnit = iota
	Feet
)

const (
	feetPerMetre  = 3.28084
	feetPerMile   = 5280.0
	metresPerMile = 1609.344
)

// ParseDistUnit parses "m" or "ft". The empty string selects metres.
func ParseDistUnit(s string) (DistUnit, error) {
	switch s {
	case "", "m":
		return Metres, nil
	case "ft":
		return Feet, nil
	default:
		return 0, fmt.Errorf("invalid distance unit %q (valid: m, ft)", s)
	}
}

func (u DistUnit) String() string {
	if u == Feet {
		return "ft"
	}
	return "m"
}

// ConvertDist converts metres to u.
func ConvertDist(metres float64, u DistUnit) float64 {
	if u == Feet {
		return metres * feetPerMetre
	}
	return metres
}

// PrettyDist formats a distance in metres with two decimals. In feet,
// distances of a mile or more are shown in miles.
func PrettyDist(metres float64, u DistUnit) string {
	d := ConvertDist(metres, u)
	if u == Feet && d >= feetPerMile {
		return fmt.Sprintf("%.2f mi", d/feetPerMile)
	}
	return fmt.Sprintf("%.2f %s", d, u)
}

// SpeedUnit is the unit speeds are displayed in. Pace units are minutes per
// unit distance.
type SpeedUnit int

const (
	KmPerH SpeedUnit = iota
	MiPerH
	MPerS
	FtPerS
	MinPerMi
	MinPerKm
)

var speedNames = []string{
	KmPerH:   "km/h",
	MiPerH:   "mi/h",
	MPerS:    "m/s",
	FtPerS:   "ft/s",
	MinPerMi: "min/mi",
	MinPerKm: "min/km",
}

// ParseSpeedUnit parses one of km/h, mi/h, m/s, ft/s, min/mi or min/km.
func ParseSpeedUnit(s string) (SpeedUnit, error) {
	for u, name := range speedNames {
		if name == s {
			return SpeedUnit(u), nil
		}
	}
	return 0, fmt.Errorf("invalid speed unit %q (valid: %s)", s, strings.Join(speedNames, ", "))
}

// DefaultSpeedUnit matches the distance unit: km/h for metres, mi/h for feet.
func DefaultSpeedUnit(d DistUnit) SpeedUnit {
	if d == Feet {
		return MiPerH
	}
	return KmPerH
}

func (u SpeedUnit) String() string {
	if int(u) < 0 || int(u) >= len(speedNames) {
		return fmt.Sprintf("SpeedUnit(%d)", int(u))
	}
	return speedNames[u]
}

// IsPace reports whether u is minutes per distance rather than distance per time.
func (u SpeedUnit) IsPace() bool {
	return u == MinPerMi || u == MinPerKm
}

// ConvertSpeed converts a speed in m/s to u. Pace units return +Inf for a
// zero speed.
func ConvertSpeed(mps float64, u SpeedUnit) float64 {
	switch u {
	case MiPerH:
		return mps * 3600 / metresPerMile
	case MPerS:
		return mps
	case FtPerS:
		return mps * feetPerMetre
	case MinPerMi:
		return metresPerMile / 60 / mps
	case MinPerKm:
		return 1000.0 / 60 / mps
	default:
		return mps * 3.6
	}
}

// PrettySpeed formats a speed in m/s. Paces are shown as m:ss.
func PrettySpeed(mps float64, u SpeedUnit) string {
	v := ConvertSpeed(mps, u)
	if !u.IsPace() {
		return fmt.Sprintf("%.2f %s", v, u)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "- " + u.String()
	}
	secs := int64(math.Round(v * 60))
	return fmt.Sprintf("%d:%02d %s", secs/60, secs%60, u)
}

// PrettyDuration formats d as h:mm:ss, m:ss, or "N s" below a minute.
// Fractional seconds are truncated.
func PrettyDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	secs := int64(d / time.Second)

	var s string
	switch {
	case secs >= 3600:
		s = fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	case secs >= 60:
		s = fmt.Sprintf("%d:%02d", secs/60, secs%60)
	default:
		s = fmt.Sprintf("%d s", secs)
	}

	if neg {
		return "-" + s
	}
	return s
}
