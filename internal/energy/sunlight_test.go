package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeason(t *testing.T) {
	for in, want := range map[string]Season{"summer": Summer, "WINTER": Winter, " Monsoon ": Monsoon} {
		got, err := ParseSeason(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSeason("spring")
	assert.ErrorIs(t, err, ErrUnknownSeason)
}

func TestSunlightFactor_PeakAtSolarNoon(t *testing.T) {
	for _, season := range Seasons() {
		p, err := ParamsFor(season)
		require.NoError(t, err)

		assert.InDelta(t, p.Peak, SunlightFactor(p, p.SolarNoon()), 1e-12, season)
		assert.Zero(t, SunlightFactor(p, p.Sunrise-0.01), season)
		assert.Zero(t, SunlightFactor(p, p.Sunset+0.01), season)
		assert.InDelta(t, 0, SunlightFactor(p, p.Sunrise), 1e-12, season)
	}
}

func TestSunlightProfile(t *testing.T) {
	for _, season := range Seasons() {
		t.Run(string(season), func(t *testing.T) {
			p, err := ParamsFor(season)
			require.NoError(t, err)
			profile, err := SunlightProfile(season)
			require.NoError(t, err)

			maxHour := 0
			for h, v := range profile {
				if float64(h) < p.Sunrise || float64(h) > p.Sunset {
					assert.Zero(t, v, "hour %d", h)
				}
				assert.LessOrEqual(t, v, p.Peak)
				assert.GreaterOrEqual(t, v, 0.0)
				if v > profile[maxHour] {
					maxHour = h
				}
			}
			// The brightest whole hour is the one nearest solar noon.
			assert.LessOrEqual(t, absf(float64(maxHour)-p.SolarNoon()), 0.5)
		})
	}

	_, err := SunlightProfile("Spring")
	assert.ErrorIs(t, err, ErrUnknownSeason)
}

func TestBuildDailyProfile(t *testing.T) {
	d := uniformDesign(Facade{Height: 10, Width: 20, WWR: 0.3, SHGC: 0.4})
	city := bangalore(t)

	prof, err := BuildDailyProfile(d, city, Summer)
	require.NoError(t, err)
	require.Len(t, prof.Hours, 24)
	assert.Equal(t, Summer, prof.Season)
	assert.Equal(t, "Bangalore", prof.City)

	var energy float64
	for _, h := range prof.Hours {
		hf := HourlyFactors(h.Hour)
		r := city.SolarRadiation
		want := FacadeHeatGain(d.Facades.North, r.North*h.SunlightFactor*hf.North, DefaultHours) +
			FacadeHeatGain(d.Facades.South, r.South*h.SunlightFactor*hf.South, DefaultHours) +
			FacadeHeatGain(d.Facades.East, r.East*h.SunlightFactor*hf.East, DefaultHours) +
			FacadeHeatGain(d.Facades.West, r.West*h.SunlightFactor*hf.West, DefaultHours)
		assert.InDelta(t, want, h.HeatGain, 1e-6, "hour %d", h.Hour)
		assert.InDelta(t, h.EnergyConsumption*city.ElectricityRate, h.Cost, 1e-9)
		energy += h.EnergyConsumption
	}
	assert.InDelta(t, energy, prof.TotalEnergy, 1e-9)
	assert.Zero(t, prof.Hours[0].EnergyConsumption)
	assert.Zero(t, prof.Hours[23].EnergyConsumption)
	assert.Equal(t, 12, prof.PeakHour)
}

func TestBuildDailyProfile_WinterBelowSummer(t *testing.T) {
	d := uniformDesign(Facade{Height: 3, Width: 8, WWR: 0.5, SHGC: 0.6})
	city := bangalore(t)

	summer, err := BuildDailyProfile(d, city, Summer)
	require.NoError(t, err)
	winter, err := BuildDailyProfile(d, city, Winter)
	require.NoError(t, err)

	assert.Less(t, winter.TotalCost, summer.TotalCost)
}

func TestHourlyFactors(t *testing.T) {
	base := OrientationFactors{North: 0.3, South: 0.7, East: 0.5, West: 0.5}
	for _, h := range []int{0, 5, 11, 12, 13, 19, 23} {
		assert.Equal(t, base, HourlyFactors(h), "hour %d", h)
	}
	for h := 6; h <= 10; h++ {
		assert.Equal(t, OrientationFactors{North: 0.3, South: 0.7, East: 0.8, West: 0.2}, HourlyFactors(h), "hour %d", h)
	}
	for h := 14; h <= 18; h++ {
		assert.Equal(t, OrientationFactors{North: 0.3, South: 0.7, East: 0.2, West: 0.8}, HourlyFactors(h), "hour %d", h)
	}
}

func TestBuildDailyProfile_EastMorningWestAfternoon(t *testing.T) {
	glazed := Facade{Height: 3, Width: 10, WWR: 0.6, SHGC: 0.5}
	blank := Facade{Height: 3, Width: 10, WWR: 0.05, SHGC: 0.5}
	east := BuildingDesign{ID: "east", Name: "East", Facades: Facades{North: blank, South: blank, East: glazed, West: blank}}
	west := BuildingDesign{ID: "west", Name: "West", Facades: Facades{North: blank, South: blank, East: blank, West: glazed}}
	city := bangalore(t)

	eastProf, err := BuildDailyProfile(east, city, Summer)
	require.NoError(t, err)
	westProf, err := BuildDailyProfile(west, city, Summer)
	require.NoError(t, err)

	assert.Greater(t, eastProf.Hours[8].HeatGain, westProf.Hours[8].HeatGain)
	assert.Greater(t, westProf.Hours[16].HeatGain, eastProf.Hours[16].HeatGain)
	assert.InDelta(t, eastProf.Hours[12].HeatGain, westProf.Hours[12].HeatGain, 1e-9)
}

func TestBuildDailyProfile_SkylightFollowsSunOnly(t *testing.T) {
	plain := uniformDesign(Facade{Height: 3, Width: 10, WWR: 0.2, SHGC: 0.5})
	lit := plain
	lit.Skylight = &Skylight{Width: 2, Length: 3}
	city := bangalore(t)

	without, err := BuildDailyProfile(plain, city, Summer)
	require.NoError(t, err)
	with, err := BuildDailyProfile(lit, city, Summer)
	require.NoError(t, err)
	for h := range with.Hours {
		want := SkylightHeatGain(lit.Skylight, city.SolarRadiation.Roof*with.Hours[h].SunlightFactor, DefaultHours)
		assert.InDelta(t, want, with.Hours[h].HeatGain-without.Hours[h].HeatGain, 1e-6, "hour %d", h)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
