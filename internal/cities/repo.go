package cities

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the subset of *pgxpool.Pool the repository uses.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Repo persists city reference data in the city_data table.
type Repo struct {
	db pgxQuerier
}

func NewRepo(db pgxQuerier) *Repo {
	return &Repo{db: db}
}

const selectCity = `
SELECT name, solar_radiation, electricity_rate, temperature, humidity
FROM city_data
`

func scanCity(row pgx.CollectableRow) (energy.CityData, error) {
	var c energy.CityData
	err := row.Scan(&c.Name, &c.SolarRadiation, &c.ElectricityRate, &c.Temperature, &c.Humidity)
	return c, err
}

// List returns every city ordered by name.
func (r *Repo) List(ctx context.Context) ([]energy.CityData, error) {
	rows, err := r.db.Query(ctx, selectCity+"ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanCity)
	if err != nil {
		return nil, fmt.Errorf("scan cities: %w", err)
	}
	return out, nil
}

// GetByName matches the city name case-insensitively.
func (r *Repo) GetByName(ctx context.Context, name string) (energy.CityData, error) {
	rows, err := r.db.Query(ctx, selectCity+"WHERE lower(name) = lower($1)", name)
	if err != nil {
		return energy.CityData{}, fmt.Errorf("get city: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCity)
	if errors.Is(err, pgx.ErrNoRows) {
		return energy.CityData{}, energy.ErrUnknownCity
	}
	if err != nil {
		return energy.CityData{}, fmt.Errorf("get city: %w", err)
	}
	return c, nil
}

// Seed inserts cities when the table is empty and returns how many rows were written.
// Existing reference data is never overwritten.
func (r *Repo) Seed(ctx context.Context, cities []energy.CityData) (int, error) {
	var existing int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM city_data`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("count cities: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range cities {
		if err := energy.ValidateCity(c); err != nil {
			return 0, err
		}
		batch.Queue(`
INSERT INTO city_data (name, solar_radiation, electricity_rate, temperature, humidity)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO NOTHING`,
			c.Name, c.SolarRadiation, c.ElectricityRate, c.Temperature, c.Humidity)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range cities {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("seed city: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// Upsert writes or replaces one city record.
func (r *Repo) Upsert(ctx context.Context, c energy.CityData) error {
	if err := energy.ValidateCity(c); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO city_data (name, solar_radiation, electricity_rate, temperature, humidity)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE SET
	solar_radiation = EXCLUDED.solar_radiation,
	electricity_rate = EXCLUDED.electricity_rate,
	temperature = EXCLUDED.temperature,
	humidity = EXCLUDED.humidity`,
		c.Name, c.SolarRadiation, c.ElectricityRate, c.Temperature, c.Humidity)
	if err != nil {
		return fmt.Errorf("upsert city %s: %w", c.Name, err)
	}
	return nil
}
