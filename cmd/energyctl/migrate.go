package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/storage/postgres"
)

type designStore interface {
	List(ctx context.Context, buildingID string) ([]energy.BuildingDesign, error)
	Update(ctx context.Context, d energy.BuildingDesign) error
}

func runMigrate(ctx context.Context, cfg *config.Config, _ []string, out io.Writer) error {
	s, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := postgres.Migrate(ctx, s.sqlDB); err != nil {
		return err
	}
	n, err := backfillGlazing(ctx, s.designs, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "schema up to date, %d design(s) backfilled\n", n)
	return nil
}

// backfillGlazing fills missing WWR and SHGC values of stored designs and
// returns how many designs were rewritten.
func backfillGlazing(ctx context.Context, repo designStore, clock clockwork.Clock) (int, error) {
	designs, err := repo.List(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list designs: %w", err)
	}
	zap.L().Info("checking building designs", zap.Int("count", len(designs)))

	updated := 0
	for _, d := range designs {
		facades, changed := energy.FillGlazingDefaults(d.Facades)
		if !changed {
			continue
		}
		d.Facades = facades
		d.UpdatedAt = clock.Now().UTC()
		if err := repo.Update(ctx, d); err != nil {
			return updated, fmt.Errorf("update design %s: %w", d.ID, err)
		}
		zap.L().Info("backfilled building design", zap.String("id", d.ID), zap.String("name", d.Name))
		updated++
	}
	return updated, nil
}

type cityWriter interface {
	Seed(ctx context.Context, cities []energy.CityData) (int, error)
	Upsert(ctx context.Context, c energy.CityData) error
}

func runSeed(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "JSON or YAML city table to upsert instead of the built-in cities")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	msg, err := seedCities(ctx, s.cities, *file)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, msg)
	return nil
}

// seedCities inserts the built-in table when file is empty. A file replaces
// the matching records one by one, so it can correct existing data.
func seedCities(ctx context.Context, w cityWriter, file string) (string, error) {
	if file == "" {
		n, err := w.Seed(ctx, energy.DefaultCities())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d city record(s) inserted", n), nil
	}

	var cities []energy.CityData
	if err := decodeFile(file, &cities); err != nil {
		return "", err
	}
	for _, c := range cities {
		if err := w.Upsert(ctx, c); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%d city record(s) upserted from %s", len(cities), file), nil
}
