// Package units provides shared constants and validation for elevation units
package units

// Unit constants
const (
	Meters = "m"
	Feet   = "ft"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Meters, Feet}

const metersToFeet = 3.28084

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, ft"
}

// ConvertElevation converts an elevation or elevation difference from metres
// to the target units. Survey data is stored in metres.
func ConvertElevation(elevM float64, targetUnits string) float64 {
	switch targetUnits {
	case Feet:
		return elevM * metersToFeet
	case Meters:
		return elevM
	default:
		return elevM // default to metres if unknown unit
	}
}

// ConvertArea converts a vertical cross-section area from square metres to
// the target units squared. Running integrals of elevation change over
// distance carry these units.
func ConvertArea(areaM2 float64, targetUnits string) float64 {
	switch targetUnits {
	case Feet:
		return areaM2 * metersToFeet * metersToFeet
	case Meters:
		return areaM2
	default:
		return areaM2
	}
}
