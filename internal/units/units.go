// Package units provides shared constants and validation for speed units,
// plus small formatting helpers for report output.
package units

import (
	"fmt"
	"slices"
	"strings"
)

// Unit constants. KPH is an accepted alias spelling of KMPH.
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// Conversion factor from m/s and display label per unit.
var unitTable = map[string]struct {
	factor float64
	label  string
}{
	MPS:  {1, "m/s"},
	MPH:  {2.23694, "mph"},
	KMPH: {3.6, "km/h"},
	KPH:  {3.6, "km/h"},
}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	return slices.Contains(ValidUnits, unit)
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// ConvertSpeed converts a speed from meters per second to the target
// units. Unknown units pass the speed through unchanged.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	if u, ok := unitTable[targetUnits]; ok {
		return speedMPS * u.factor
	}
	return speedMPS
}

// Label returns the display label for a unit value.
func Label(unit string) string {
	if u, ok := unitTable[unit]; ok {
		return u.label
	}
	return "m/s"
}

// FormatMinSec renders a whole-second duration as "M min S sec".
func FormatMinSec(seconds int) string {
	return fmt.Sprintf("%d min %d sec", seconds/60, seconds%60)
}
