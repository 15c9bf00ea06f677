package energy

import (
	"fmt"
	"math"
)

// ValidateFacade checks that every facade field is present and in range.
func ValidateFacade(o Orientation, f Facade) error {
	prefix := fmt.Sprintf("facades.%s", o)
	if !positive(f.Height) {
		return invalid(prefix+".height", "must be greater than zero")
	}
	if !positive(f.Width) {
		return invalid(prefix+".width", "must be greater than zero")
	}
	if !positive(f.WWR) || f.WWR > 1 {
		return invalid(prefix+".wwr", "must be in (0, 1]")
	}
	if !positive(f.SHGC) || f.SHGC > 1 {
		return invalid(prefix+".shgc", "must be in (0, 1]")
	}
	return nil
}

// ValidateFacades checks all four facades in order and returns the first failure.
func ValidateFacades(f Facades) error {
	for _, of := range f.Each() {
		if err := ValidateFacade(of.Orientation, of.Facade); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSkylight accepts a nil skylight.
func ValidateSkylight(s *Skylight) error {
	if s == nil {
		return nil
	}
	if !positive(s.Width) {
		return invalid("skylight.width", "must be greater than zero")
	}
	if !positive(s.Length) {
		return invalid("skylight.length", "must be greater than zero")
	}
	return nil
}

// ValidateDesign checks the inputs the estimator depends on.
func ValidateDesign(d BuildingDesign) error {
	if err := ValidateFacades(d.Facades); err != nil {
		return err
	}
	return ValidateSkylight(d.Skylight)
}

// ValidateCity rejects a city record with a missing name or a malformed radiation table.
func ValidateCity(c CityData) error {
	if c.Name == "" {
		return invalid("city.name", "is required")
	}
	for _, o := range []Orientation{North, South, East, West, Roof} {
		v := c.SolarRadiation.For(o)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return invalid(fmt.Sprintf("city.solarRadiation.%s", o), "must be a non-negative number")
		}
	}
	r := c.ElectricityRate
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return invalid("city.electricityRate", "must be a non-negative number")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
