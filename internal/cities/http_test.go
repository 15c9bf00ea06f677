package cities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/internal/energy"
)

type brokenStore struct{}

func (brokenStore) List(context.Context) ([]energy.CityData, error) {
	return nil, errors.New("db down")
}

func (brokenStore) GetByName(context.Context, string) (energy.CityData, error) {
	return energy.CityData{}, errors.New("db down")
}

func router(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r.Group("/api/v1/cities"), store)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestListCities(t *testing.T) {
	w := get(router(NewStatic(energy.DefaultCities())), "/api/v1/cities")
	require.Equal(t, http.StatusOK, w.Code)

	var got []energy.CityData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 4)
}

func TestGetCity(t *testing.T) {
	r := router(NewStatic(energy.DefaultCities()))

	w := get(r, "/api/v1/cities/Mumbai")
	require.Equal(t, http.StatusOK, w.Code)
	var got energy.CityData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 400.0, got.SolarRadiation.Roof)

	w = get(r, "/api/v1/cities/Nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "City data not found")
}

func TestCities_StoreError(t *testing.T) {
	r := router(brokenStore{})

	w := get(r, "/api/v1/cities")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch city data")

	w = get(r, "/api/v1/cities/Mumbai")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
