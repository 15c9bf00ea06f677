package domain

import (
	"encoding/json"
	"testing"

	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_Validate(t *testing.T) {
	var req CreateRequest
	err := req.Validate()
	require.Error(t, err)
	assert.True(t, energy.IsValidation(err))
	assert.Equal(t, "facades is required", err.Error())

	f := energy.Facade{Height: 10, Width: 20, WWR: 0.3, SHGC: 0.4}
	req.Facades = &energy.Facades{North: f, South: f, East: f}
	err = req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "facades.west.height")

	req.Facades.West = f
	assert.NoError(t, req.Validate())
}

func TestUpdateRequest_SkylightPatch(t *testing.T) {
	var absent UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &absent))
	assert.False(t, absent.Skylight.Set)

	var cleared UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"skylight":null}`), &cleared))
	assert.True(t, cleared.Skylight.Set)
	assert.Nil(t, cleared.Skylight.Value)

	var set UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"skylight":{"width":2,"length":3}}`), &set))
	require.NotNil(t, set.Skylight.Value)
	assert.Equal(t, 3.0, set.Skylight.Value.Length)
}

func TestUpdateRequest_Apply(t *testing.T) {
	d := energy.BuildingDesign{
		ID:         "d1",
		BuildingID: "b1",
		Name:       "old",
		Skylight:   &energy.Skylight{Width: 1, Length: 1},
	}

	name := "new"
	empty := ""
	req := UpdateRequest{Name: &name, BuildingID: &empty, Skylight: SkylightPatch{Set: true}}
	got := req.Apply(d)

	assert.Equal(t, "d1", got.ID)
	assert.Equal(t, "b1", got.BuildingID, "blank buildingId keeps the existing one")
	assert.Equal(t, "new", got.Name)
	assert.Nil(t, got.Skylight)
}

func TestUpdateRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateRequest{}.Validate())

	bad := UpdateRequest{Facades: &energy.Facades{}}
	assert.True(t, energy.IsValidation(bad.Validate()))

	badSky := UpdateRequest{Skylight: SkylightPatch{Set: true, Value: &energy.Skylight{Width: 1}}}
	assert.True(t, energy.IsValidation(badSky.Validate()))
}
