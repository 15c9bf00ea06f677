package energy

import "strings"

// DefaultCities is the reference climate table the store is seeded with.
func DefaultCities() []CityData {
	return []CityData{
		{
			Name:            "Bangalore",
			SolarRadiation:  SolarRadiation{North: 150, South: 250, East: 200, West: 200, Roof: 300},
			ElectricityRate: 6.5,
			Temperature:     Seasonal{Summer: 35, Winter: 20, Monsoon: 28},
			Humidity:        Seasonal{Summer: 60, Winter: 40, Monsoon: 80},
		},
		{
			Name:            "Mumbai",
			SolarRadiation:  SolarRadiation{North: 180, South: 350, East: 280, West: 270, Roof: 400},
			ElectricityRate: 9.0,
			Temperature:     Seasonal{Summer: 32, Winter: 22, Monsoon: 30},
			Humidity:        Seasonal{Summer: 75, Winter: 50, Monsoon: 85},
		},
		{
			Name:            "Kolkata",
			SolarRadiation:  SolarRadiation{North: 200, South: 400, East: 300, West: 290, Roof: 450},
			ElectricityRate: 7.5,
			Temperature:     Seasonal{Summer: 34, Winter: 18, Monsoon: 32},
			Humidity:        Seasonal{Summer: 70, Winter: 45, Monsoon: 82},
		},
		{
			Name:            "Delhi",
			SolarRadiation:  SolarRadiation{North: 160, South: 270, East: 220, West: 220, Roof: 320},
			ElectricityRate: 8.5,
			Temperature:     Seasonal{Summer: 40, Winter: 15, Monsoon: 35},
			Humidity:        Seasonal{Summer: 50, Winter: 30, Monsoon: 70},
		},
	}
}

// FindCity looks a city up by name, ignoring case.
func FindCity(cities []CityData, name string) (CityData, error) {
	for _, c := range cities {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return CityData{}, ErrUnknownCity
}
