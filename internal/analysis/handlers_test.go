package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/internal/cities"
	"github.com/buildsense/energy-backend/internal/energy"
)

func setupRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(f.svc).Register(r.Group("/api/v1/analysis"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestBuildingsRoute(t *testing.T) {
	r := setupRouter(newFixture(t, testDesign("a", 0.3), testDesign("b", 0.2)))

	w := get(r, "/api/v1/analysis/buildings?ids=a")
	require.Equal(t, http.StatusOK, w.Code)

	var results []energy.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 4)

	w = get(r, "/api/v1/analysis/buildings")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 8)
}

func TestBuildingsRoute_NotFound(t *testing.T) {
	r := setupRouter(newFixture(t))

	w := get(r, "/api/v1/analysis/buildings")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No building designs found"}`, w.Body.String())
}

func TestBuildingCityRoute(t *testing.T) {
	r := setupRouter(newFixture(t, testDesign("a", 0.3)))

	w := get(r, "/api/v1/analysis/buildings/a/cities/Kolkata")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"city":"Kolkata"`)

	w = get(r, "/api/v1/analysis/buildings/a/cities/Paris")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/api/v1/analysis/buildings/zzz/cities/Kolkata")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileRoute(t *testing.T) {
	r := setupRouter(newFixture(t, testDesign("a", 0.3)))

	w := get(r, "/api/v1/analysis/buildings/a/profile?city=Mumbai&season=Monsoon")
	require.Equal(t, http.StatusOK, w.Code)

	var p energy.DailyProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, energy.Monsoon, p.Season)
	assert.Len(t, p.Hours, 24)

	w = get(r, "/api/v1/analysis/buildings/a/profile")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/v1/analysis/buildings/a/profile?city=Mumbai&season=autumn")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankingsRoute(t *testing.T) {
	r := setupRouter(newFixture(t, testDesign("a", 0.3), testDesign("b", 0.2)))

	w := get(r, "/api/v1/analysis/rankings?city=Delhi")
	require.Equal(t, http.StatusOK, w.Code)

	var ca energy.ComparativeAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ca))
	require.NotNil(t, ca.BestPerformer)
	assert.Equal(t, "b", ca.BestPerformer.BuildingDesignID)

	w = get(r, "/api/v1/analysis/rankings")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_InvalidStoredDesign(t *testing.T) {
	broken := testDesign("bad", 0.3)
	broken.Facades.West.Height = 0
	r := setupRouter(newFixture(t, broken))

	for _, path := range []string{
		"/api/v1/analysis/buildings/bad/cities/Mumbai",
		"/api/v1/analysis/buildings?ids=bad",
		"/api/v1/analysis/buildings/bad/profile?city=Mumbai",
		"/api/v1/analysis/rankings?city=Mumbai&ids=bad",
	} {
		w := get(r, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "facades.west.height must be greater than zero", path)
	}
}

func TestRoutes_InvalidCityDataIsServerError(t *testing.T) {
	f := newFixture(t, testDesign("a", 0.3))
	bad := energy.DefaultCities()
	bad[1].SolarRadiation.South = -1
	f.svc.cities = cities.NewStatic(bad)
	r := setupRouter(f)

	w := get(r, "/api/v1/analysis/buildings/a/cities/Mumbai")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to analyze building")
	assert.Contains(t, w.Body.String(), "city.solarRadiation.south")

	w = get(r, "/api/v1/analysis/buildings")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
