package cities

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/storage/postgres"
)

// setupRepo connects to the database named by TEST_DB_DSN, applies the schema
// and empties city_data. The test is skipped when the variable is not set.
func setupRepo(t *testing.T) *Repo {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}
	ctx := context.Background()

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, postgres.Migrate(ctx, db))
	_, err = db.ExecContext(ctx, `DELETE FROM city_data`)
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewRepo(pool)
}

func TestRepo_SeedAndRead(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	n, err := repo.Seed(ctx, energy.DefaultCities())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = repo.Seed(ctx, energy.DefaultCities())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Bangalore", all[0].Name)

	c, err := repo.GetByName(ctx, "DELHI")
	require.NoError(t, err)
	assert.Equal(t, energy.SolarRadiation{North: 160, South: 270, East: 220, West: 220, Roof: 320}, c.SolarRadiation)

	_, err = repo.GetByName(ctx, "Atlantis")
	assert.ErrorIs(t, err, energy.ErrUnknownCity)
}

func TestRepo_Upsert(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	city := energy.DefaultCities()[0]
	require.NoError(t, repo.Upsert(ctx, city))

	city.ElectricityRate = 7.25
	require.NoError(t, repo.Upsert(ctx, city))

	got, err := repo.GetByName(ctx, city.Name)
	require.NoError(t, err)
	assert.Equal(t, 7.25, got.ElectricityRate)

	assert.True(t, energy.IsValidation(repo.Upsert(ctx, energy.CityData{})))
}
