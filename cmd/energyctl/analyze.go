package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/analysis"
	"github.com/buildsense/energy-backend/internal/cache"
	"github.com/buildsense/energy-backend/internal/energy"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	worstStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runAnalyze(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	cityName := fs.String("city", "", "city name")
	ids := fs.String("ids", "", "comma separated design ids, all designs when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cityName == "" {
		return errors.New("-city is required")
	}

	s, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	svc := analysis.NewService(s.designs, s.cities, cache.Noop{}, nil, nil)
	ca, err := svc.Rankings(ctx, analysis.ParseIDs(*ids), *cityName)
	if err != nil {
		return err
	}
	renderRankings(out, ca)
	return nil
}

func renderRankings(w io.Writer, ca energy.ComparativeAnalysis) {
	fmt.Fprintln(w, headerStyle.Render("Cooling energy ranking for "+ca.City))

	rows := make([]string, 0, len(ca.Rankings)+1)
	rows = append(rows, headerStyle.Render(fmt.Sprintf("%-4s %-28s %12s %12s %10s %10s",
		"#", "design", "heat (BTU)", "energy kWh", "cost Rs", "CO2 kg")))
	for i, r := range ca.Rankings {
		line := fmt.Sprintf("%-4d %-28s %12.1f %12.3f %10.2f %10.3f",
			i+1, truncate(r.Name, 28), r.TotalHeatGain, r.EnergyConsumption, r.Cost, r.CarbonEmissions)
		switch {
		case ca.BestPerformer != nil && r.BuildingDesignID == ca.BestPerformer.BuildingDesignID:
			line = bestStyle.Render(line)
		case ca.WorstPerformer != nil && r.BuildingDesignID == ca.WorstPerformer.BuildingDesignID:
			line = worstStyle.Render(line)
		}
		rows = append(rows, line)
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))

	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("average cost Rs %.2f, best saves Rs %.2f against the worst",
		ca.AverageCost, ca.CostSavings)))
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n-1])) + "~"
}
