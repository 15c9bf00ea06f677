package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/internal/designs/domain"
	"github.com/buildsense/energy-backend/internal/energy"
)

var columns = []string{"id", "building_id", "name", "facades", "skylight", "created_at", "updated_at"}

const facadesJSON = `{"north":{"height":10,"width":20,"wwr":0.3,"shgc":0.4},` +
	`"south":{"height":10,"width":20,"wwr":0.3,"shgc":0.4},` +
	`"east":{"height":10,"width":20,"wwr":0.3,"shgc":0.4},` +
	`"west":{"height":10,"width":20,"wwr":0.3,"shgc":0.4}}`

func newRepo(t *testing.T) (*DesignRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDesignRepository(db), mock
}

func TestDesignRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("d1", "b1", "Tower", []byte(facadesJSON), []byte(`{"width":2,"length":3}`), now, now))

	d, err := repo.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "b1", d.BuildingID)
	assert.Equal(t, 0.3, d.Facades.West.WWR)
	require.NotNil(t, d.Skylight)
	assert.Equal(t, 3.0, d.Skylight.Length)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDesignRepository_Get_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDesignRepository_List_FilterByBuilding(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE building_id = $1")).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("d1", "b1", "A", []byte(facadesJSON), nil, now, now).
			AddRow("d2", "b1", "B", []byte(facadesJSON), nil, now, now))

	out, err := repo.List(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].Skylight)
	assert.Equal(t, "B", out[1].Name)
}

func TestDesignRepository_List_All(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(columns))

	out, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestDesignRepository_GetMany_Empty(t *testing.T) {
	repo, mock := newRepo(t)

	out, err := repo.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDesignRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	f := energy.Facade{Height: 10, Width: 20, WWR: 0.3, SHGC: 0.4}
	d := energy.BuildingDesign{
		ID: "d1", BuildingID: "d1", Name: "Tower",
		Facades:   energy.Facades{North: f, South: f, East: f, West: f},
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO building_designs")).
		WithArgs("d1", "d1", "Tower", sqlmock.AnyArg(), sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDesignRepository_Update_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE building_designs")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), energy.BuildingDesign{ID: "d1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDesignRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM building_designs WHERE id = $1")).
		WithArgs("d1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM building_designs WHERE id = $1")).
		WithArgs("d1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "d1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "d1"), domain.ErrNotFound)
}

func TestDesignRepository_DeleteAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM building_designs;")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
