package energy

import (
	"math"
	"strings"
)

// Season selects the sunlight parameters of the daily profile.
type Season string

const (
	Summer  Season = "Summer"
	Winter  Season = "Winter"
	Monsoon Season = "Monsoon"
)

// SeasonParams are sunrise and sunset in fractional 24h hours and the peak intensity.
type SeasonParams struct {
	Sunrise float64
	Sunset  float64
	Peak    float64
}

// SolarNoon is the midpoint between sunrise and sunset.
func (p SeasonParams) SolarNoon() float64 {
	return (p.Sunrise + p.Sunset) / 2
}

var seasonParams = map[Season]SeasonParams{
	Summer:  {Sunrise: 5.5, Sunset: 19, Peak: 1.0},
	Winter:  {Sunrise: 6.5, Sunset: 17.5, Peak: 0.7},
	Monsoon: {Sunrise: 6, Sunset: 18.5, Peak: 0.85},
}

// Seasons lists the supported seasons.
func Seasons() []Season {
	return []Season{Summer, Winter, Monsoon}
}

// ParseSeason accepts any casing of a season name.
func ParseSeason(s string) (Season, error) {
	for _, season := range Seasons() {
		if strings.EqualFold(string(season), strings.TrimSpace(s)) {
			return season, nil
		}
	}
	return "", ErrUnknownSeason
}

// ParamsFor returns the sunlight parameters for a season.
func ParamsFor(season Season) (SeasonParams, error) {
	p, ok := seasonParams[season]
	if !ok {
		return SeasonParams{}, ErrUnknownSeason
	}
	return p, nil
}

// SunlightFactor is the half-sine intensity at a fractional hour: zero outside
// [sunrise, sunset] and equal to the peak at solar noon.
func SunlightFactor(p SeasonParams, hour float64) float64 {
	if hour < p.Sunrise || hour > p.Sunset {
		return 0
	}
	x := (hour - p.Sunrise) / (p.Sunset - p.Sunrise) * math.Pi
	return math.Max(0, math.Sin(x)*p.Peak)
}

// SunlightProfile samples SunlightFactor at each whole hour of the day.
func SunlightProfile(season Season) ([24]float64, error) {
	var profile [24]float64
	p, err := ParamsFor(season)
	if err != nil {
		return profile, err
	}
	for h := range profile {
		profile[h] = SunlightFactor(p, float64(h))
	}
	return profile, nil
}

// OrientationFactors weights each facade's share of the hour's radiation.
type OrientationFactors struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// HourlyFactors favours the east facade in the morning and the west facade in
// the afternoon. North and south keep their base share all day.
func HourlyFactors(hour int) OrientationFactors {
	f := OrientationFactors{North: 0.3, South: 0.7, East: 0.5, West: 0.5}
	switch {
	case hour >= 6 && hour <= 10:
		f.East, f.West = 0.8, 0.2
	case hour >= 14 && hour <= 18:
		f.East, f.West = 0.2, 0.8
	}
	return f
}

// Weight applies per-facade factors. Roof radiation is left unchanged.
func (r SolarRadiation) Weight(f OrientationFactors) SolarRadiation {
	return SolarRadiation{
		North: r.North * f.North,
		South: r.South * f.South,
		East:  r.East * f.East,
		West:  r.West * f.West,
		Roof:  r.Roof,
	}
}

// HourlyPoint is one hour of a daily energy profile.
type HourlyPoint struct {
	Hour              int     `json:"hour"`
	SunlightFactor    float64 `json:"sunlightFactor"`
	HeatGain          float64 `json:"heatGain"`
	EnergyConsumption float64 `json:"energyConsumption"`
	Cost              float64 `json:"cost"`
}

// DailyProfile is the 24-hour energy series of a design in a city and season.
type DailyProfile struct {
	BuildingDesignID string        `json:"buildingDesignId"`
	City             string        `json:"city"`
	Season           Season        `json:"season"`
	Hours            []HourlyPoint `json:"hours"`
	TotalHeatGain    float64       `json:"totalHeatGain"`
	TotalEnergy      float64       `json:"totalEnergy"`
	TotalCost        float64       `json:"totalCost"`
	PeakHour         int           `json:"peakHour"`
}

// BuildDailyProfile distributes the city's radiation over the day with the
// seasonal sunlight curve, weights each facade by HourlyFactors and prices
// each hour. The skylight follows the sunlight curve only.
func BuildDailyProfile(d BuildingDesign, city CityData, season Season) (DailyProfile, error) {
	if err := ValidateDesign(d); err != nil {
		return DailyProfile{}, err
	}
	if err := ValidateCity(city); err != nil {
		return DailyProfile{}, err
	}
	factors, err := SunlightProfile(season)
	if err != nil {
		return DailyProfile{}, err
	}

	out := DailyProfile{
		BuildingDesignID: d.ID,
		City:             city.Name,
		Season:           season,
		Hours:            make([]HourlyPoint, 0, len(factors)),
	}
	peak := -1.0
	for h, factor := range factors {
		rad := city.SolarRadiation.Scale(factor).Weight(HourlyFactors(h))
		hg := TotalHeatGain(d, rad, DefaultHours)
		consumption := EnergyConsumption(CoolingLoad(hg.Total))
		cost := CoolingCost(consumption, city.ElectricityRate)

		out.Hours = append(out.Hours, HourlyPoint{
			Hour:              h,
			SunlightFactor:    factor,
			HeatGain:          hg.Total,
			EnergyConsumption: consumption,
			Cost:              cost,
		})
		out.TotalHeatGain += hg.Total
		out.TotalEnergy += consumption
		out.TotalCost += cost
		if consumption > peak {
			peak = consumption
			out.PeakHour = h
		}
	}
	return out, nil
}
