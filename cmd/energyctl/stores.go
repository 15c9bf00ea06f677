package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/bootstrap"
	"github.com/buildsense/energy-backend/internal/cities"
	"github.com/buildsense/energy-backend/internal/designs/repository"
	"github.com/buildsense/energy-backend/internal/storage/postgres"
)

// stores holds the database handles a command needs.
type stores struct {
	sqlDB   *sql.DB
	pool    *pgxpool.Pool
	designs *repository.DesignRepository
	cities  *cities.Repo
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if !cfg.Database.Enabled {
		return nil, errors.New("database is disabled (DB_ENABLED=false)")
	}
	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      postgres.DSN(&cfg.Database),
		AppName:  "energyctl",
		MaxConns: 2,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open pool: %w", err)
	}
	return &stores{
		sqlDB:   sqlDB,
		pool:    pool,
		designs: repository.NewDesignRepository(sqlDB),
		cities:  cities.NewRepo(pool),
	}, nil
}

func (s *stores) Close() {
	s.pool.Close()
	_ = s.sqlDB.Close()
}
