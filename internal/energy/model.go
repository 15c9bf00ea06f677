package energy

import "time"

// Orientation identifies which way a surface faces.
type Orientation string

const (
	North Orientation = "north"
	South Orientation = "south"
	East  Orientation = "east"
	West  Orientation = "west"
	Roof  Orientation = "roof"
)

// Facade describes one vertical wall of a building.
type Facade struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	WWR    float64 `json:"wwr"`  // window-to-wall ratio (0-1)
	SHGC   float64 `json:"shgc"` // solar heat gain coefficient (0-1)
}

// Facades holds the four cardinal walls of a design.
type Facades struct {
	North Facade `json:"north"`
	South Facade `json:"south"`
	East  Facade `json:"east"`
	West  Facade `json:"west"`
}

// OrientedFacade pairs a facade with the direction it faces.
type OrientedFacade struct {
	Orientation Orientation
	Facade      Facade
}

// Each returns the facades in a fixed north, south, east, west order.
func (f Facades) Each() []OrientedFacade {
	return []OrientedFacade{
		{North, f.North},
		{South, f.South},
		{East, f.East},
		{West, f.West},
	}
}

// Skylight is an optional horizontal glazed opening in the roof.
type Skylight struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// BuildingDesign is one saved revision of a building's envelope.
type BuildingDesign struct {
	ID         string    `json:"id"`
	BuildingID string    `json:"buildingId,omitempty" yaml:"buildingId"` // groups revisions of the same building
	Name       string    `json:"name"`
	Facades    Facades   `json:"facades"`
	Skylight   *Skylight `json:"skylight,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// SolarRadiation is the design radiation per orientation (W/m²).
type SolarRadiation struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
	Roof  float64 `json:"roof"`
}

// For returns the radiation for the given orientation.
func (r SolarRadiation) For(o Orientation) float64 {
	switch o {
	case North:
		return r.North
	case South:
		return r.South
	case East:
		return r.East
	case West:
		return r.West
	case Roof:
		return r.Roof
	}
	return 0
}

// Scale returns a copy with every orientation multiplied by factor.
func (r SolarRadiation) Scale(factor float64) SolarRadiation {
	return SolarRadiation{
		North: r.North * factor,
		South: r.South * factor,
		East:  r.East * factor,
		West:  r.West * factor,
		Roof:  r.Roof * factor,
	}
}

// Seasonal holds one value per season.
type Seasonal struct {
	Summer  float64 `json:"summer"`
	Winter  float64 `json:"winter"`
	Monsoon float64 `json:"monsoon"`
}

// CityData is the static climate and tariff reference for one city.
type CityData struct {
	Name            string         `json:"name"`
	SolarRadiation  SolarRadiation `json:"solarRadiation" yaml:"solarRadiation"`
	ElectricityRate float64        `json:"electricityRate" yaml:"electricityRate"` // Rs/kWh
	Temperature     Seasonal       `json:"temperature"`
	Humidity        Seasonal       `json:"humidity"`
}

// HeatGain breaks total heat gain down by surface.
type HeatGain struct {
	North    float64 `json:"north"`
	South    float64 `json:"south"`
	East     float64 `json:"east"`
	West     float64 `json:"west"`
	Skylight float64 `json:"skylight,omitempty"`
	Total    float64 `json:"total"`
}

// AnalysisResult is the derived estimate for one design in one city.
type AnalysisResult struct {
	BuildingDesignID  string    `json:"buildingDesignId"`
	Name              string    `json:"name"`
	City              string    `json:"city"`
	HeatGain          HeatGain  `json:"heatGain"`
	CoolingLoad       float64   `json:"coolingLoad"`
	EnergyConsumption float64   `json:"energyConsumption"`
	CoolingCost       float64   `json:"coolingCost"`
	CreatedAt         time.Time `json:"createdAt"`
}
