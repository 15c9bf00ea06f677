package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/energy"
)

func runProfile(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	id := fs.String("id", "", "stored building design id")
	file := fs.String("file", "", "JSON or YAML building design to profile without a database")
	cityName := fs.String("city", "", "city name")
	seasonName := fs.String("season", string(energy.Summer), "Summer, Winter or Monsoon")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cityName == "" {
		return errors.New("-city is required")
	}
	if (*id == "") == (*file == "") {
		return errors.New("exactly one of -id or -file is required")
	}
	season, err := energy.ParseSeason(*seasonName)
	if err != nil {
		return err
	}

	var (
		design energy.BuildingDesign
		city   energy.CityData
	)
	if *file != "" {
		design, err = loadDesignFile(*file)
		if err != nil {
			return err
		}
		city, err = energy.FindCity(energy.DefaultCities(), *cityName)
		if err != nil {
			return err
		}
	} else {
		s, err := openStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		d, err := s.designs.Get(ctx, *id)
		if err != nil {
			return err
		}
		design = *d
		if city, err = s.cities.GetByName(ctx, *cityName); err != nil {
			return err
		}
	}

	profile, err := energy.BuildDailyProfile(design, city, season)
	if err != nil {
		return err
	}
	renderProfile(out, design.Name, profile)
	return nil
}

func loadDesignFile(path string) (energy.BuildingDesign, error) {
	var d energy.BuildingDesign
	if err := decodeFile(path, &d); err != nil {
		return d, err
	}
	if d.ID == "" {
		d.ID = path
	}
	return d, nil
}

func renderProfile(w io.Writer, name string, p energy.DailyProfile) {
	series := make([]float64, len(p.Hours))
	for i, h := range p.Hours {
		series[i] = h.EnergyConsumption
	}

	caption := fmt.Sprintf("%s in %s, %s (kWh per hour)", name, p.City, p.Season)
	fmt.Fprintln(w, asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "total energy  %.2f kWh\n", p.TotalEnergy)
	fmt.Fprintf(w, "total cost    Rs %.2f\n", p.TotalCost)
	fmt.Fprintf(w, "peak hour     %02d:00\n", p.PeakHour)
}
