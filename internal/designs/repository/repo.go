package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/buildsense/energy-backend/internal/designs/domain"
	"github.com/buildsense/energy-backend/internal/energy"
)

// DesignRepository stores building designs with facades and skylight as JSONB documents.
type DesignRepository struct {
	db *sql.DB
}

func NewDesignRepository(db *sql.DB) *DesignRepository {
	return &DesignRepository{db: db}
}

const selectDesign = `
SELECT id, building_id, name, facades, skylight, created_at, updated_at
FROM building_designs
`

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(row scanner) (energy.BuildingDesign, error) {
	var (
		d        energy.BuildingDesign
		facades  []byte
		skylight []byte
	)
	if err := row.Scan(&d.ID, &d.BuildingID, &d.Name, &facades, &skylight, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return d, err
	}
	if err := json.Unmarshal(facades, &d.Facades); err != nil {
		return d, fmt.Errorf("decode facades of %s: %w", d.ID, err)
	}
	if len(skylight) > 0 && string(skylight) != "null" {
		d.Skylight = &energy.Skylight{}
		if err := json.Unmarshal(skylight, d.Skylight); err != nil {
			return d, fmt.Errorf("decode skylight of %s: %w", d.ID, err)
		}
	}
	return d, nil
}

func collect(rows *sql.Rows) ([]energy.BuildingDesign, error) {
	defer rows.Close()

	out := make([]energy.BuildingDesign, 0, 16)
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all designs, or only those of one building when buildingID is set.
func (r *DesignRepository) List(ctx context.Context, buildingID string) ([]energy.BuildingDesign, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if buildingID == "" {
		rows, err = r.db.QueryContext(ctx, selectDesign+"ORDER BY created_at, id")
	} else {
		rows, err = r.db.QueryContext(ctx, selectDesign+"WHERE building_id = $1 ORDER BY created_at, id", buildingID)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *DesignRepository) Get(ctx context.Context, id string) (*energy.BuildingDesign, error) {
	row := r.db.QueryRowContext(ctx, selectDesign+"WHERE id = $1", id)
	d, err := scanDesign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetMany returns the designs matching ids in storage order. Unknown ids are skipped.
func (r *DesignRepository) GetMany(ctx context.Context, ids []string) ([]energy.BuildingDesign, error) {
	if len(ids) == 0 {
		return []energy.BuildingDesign{}, nil
	}
	rows, err := r.db.QueryContext(ctx, selectDesign+"WHERE id = ANY($1::uuid[]) ORDER BY created_at, id", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *DesignRepository) Create(ctx context.Context, d energy.BuildingDesign) error {
	facades, skylight, err := encode(d)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO building_designs (id, building_id, name, facades, skylight, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err = r.db.ExecContext(ctx, q, d.ID, d.BuildingID, d.Name, facades, skylight, d.CreatedAt, d.UpdatedAt)
	return err
}

// Update overwrites every mutable column of the design with the given ID.
func (r *DesignRepository) Update(ctx context.Context, d energy.BuildingDesign) error {
	facades, skylight, err := encode(d)
	if err != nil {
		return err
	}

	const q = `
UPDATE building_designs
SET building_id = $2, name = $3, facades = $4, skylight = $5, updated_at = $6
WHERE id = $1;
`
	result, err := r.db.ExecContext(ctx, q, d.ID, d.BuildingID, d.Name, facades, skylight, d.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *DesignRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM building_designs WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteAll removes every design and returns how many were deleted.
func (r *DesignRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM building_designs;`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func encode(d energy.BuildingDesign) (facades, skylight []byte, err error) {
	facades, err = json.Marshal(d.Facades)
	if err != nil {
		return nil, nil, fmt.Errorf("encode facades: %w", err)
	}
	if d.Skylight != nil {
		skylight, err = json.Marshal(d.Skylight)
		if err != nil {
			return nil, nil, fmt.Errorf("encode skylight: %w", err)
		}
	}
	return facades, skylight, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
