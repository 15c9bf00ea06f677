package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBOptions tune the pgx pool used by the city store.
type DBOptions struct {
	DSN         string
	AppName     string // reported as application_name to PostgreSQL
	MaxConns    int32
	MaxConnIdle time.Duration
	ConnectTO   time.Duration
	PingTO      time.Duration
}

func (o *DBOptions) defaults() {
	if o.ConnectTO == 0 {
		o.ConnectTO = 5 * time.Second
	}
	if o.PingTO == 0 {
		o.PingTO = 2 * time.Second
	}
	if o.MaxConnIdle == 0 {
		o.MaxConnIdle = 5 * time.Minute
	}
}

// OpenDB builds a pgx pool from opt and pings it before returning.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	if opt.DSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	opt.defaults()

	poolCfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if opt.MaxConns > 0 {
		poolCfg.MaxConns = opt.MaxConns
	}
	poolCfg.MaxConnIdleTime = opt.MaxConnIdle
	if opt.AppName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = opt.AppName
	}

	connectCtx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, opt.PingTO)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pool: %w", err)
	}
	return pool, nil
}
