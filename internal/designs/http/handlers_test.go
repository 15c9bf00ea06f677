package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/internal/designs/repository"
	"github.com/buildsense/energy-backend/internal/designs/service"
	"github.com/buildsense/energy-backend/internal/energy"
)

const validBody = `{
	"name": "Tower",
	"facades": {
		"north": {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
		"south": {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
		"east":  {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
		"west":  {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4}
	}
}`

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := service.NewDesignService(repository.NewMemoryRepository(), service.Options{})
	New(svc).Register(r.Group("/api/v1/building-designs"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func create(t *testing.T, r *gin.Engine) energy.BuildingDesign {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/building-designs", validBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var d energy.BuildingDesign
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	return d
}

func TestCreateAndGet(t *testing.T) {
	r := setupRouter()
	d := create(t, r)
	assert.Equal(t, "Tower", d.Name)
	assert.Equal(t, d.ID, d.BuildingID)

	w := do(r, http.MethodGet, "/api/v1/building-designs/"+d.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/building-designs?buildingId="+d.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []energy.BuildingDesign
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestCreate_MissingFacadeProperty(t *testing.T) {
	r := setupRouter()
	body := `{"facades": {
		"north": {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
		"south": {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
		"east":  {"height": 10, "width": 20, "wwr": 0.3},
		"west":  {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4}
	}}`

	w := do(r, http.MethodPost, "/api/v1/building-designs", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "facades.east.shgc")
}

func TestCreate_InvalidJSON(t *testing.T) {
	r := setupRouter()
	w := do(r, http.MethodPost, "/api/v1/building-designs", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGet_NotFound(t *testing.T) {
	r := setupRouter()
	w := do(r, http.MethodGet, "/api/v1/building-designs/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Building design not found"}`, w.Body.String())
}

func TestUpdateAndCompare(t *testing.T) {
	r := setupRouter()
	a := create(t, r)
	b := create(t, r)

	w := do(r, http.MethodPut, "/api/v1/building-designs/"+b.ID,
		`{"facades": {
			"north": {"height": 12, "width": 20, "wwr": 0.3, "shgc": 0.4},
			"south": {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
			"east":  {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4},
			"west":  {"height": 10, "width": 20, "wwr": 0.3, "shgc": 0.4}
		}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Building design updated successfully")

	w = do(r, http.MethodGet, "/api/v1/building-designs/"+a.ID+"/compare/"+b.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Differences []struct {
			Field string  `json:"field"`
			From  float64 `json:"from"`
			To    float64 `json:"to"`
		} `json:"differences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Differences, 1)
	assert.Equal(t, "facades.north.height", resp.Differences[0].Field)
	assert.Equal(t, 12.0, resp.Differences[0].To)
}

func TestUpdate_InvalidFacades(t *testing.T) {
	r := setupRouter()
	d := create(t, r)

	w := do(r, http.MethodPut, "/api/v1/building-designs/"+d.ID, `{"facades": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUndoRoute(t *testing.T) {
	r := setupRouter()
	d := create(t, r)

	w := do(r, http.MethodPost, "/api/v1/building-designs/"+d.ID+"/undo", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPut, "/api/v1/building-designs/"+d.ID, `{"name": "Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/v1/building-designs/"+d.ID+"/undo", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Tower"`)

	w = do(r, http.MethodGet, "/api/v1/building-designs/"+d.ID+"/history", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAndClear(t *testing.T) {
	r := setupRouter()
	d := create(t, r)
	create(t, r)

	w := do(r, http.MethodDelete, "/api/v1/building-designs/"+d.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/building-designs/"+d.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/building-designs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":1`)

	w = do(r, http.MethodGet, "/api/v1/building-designs", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}
