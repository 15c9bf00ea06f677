package cities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/internal/energy"
)

func TestStatic(t *testing.T) {
	ctx := context.Background()
	src := energy.DefaultCities()
	s := NewStatic(src)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	all[0].Name = "mutated"
	again, _ := s.List(ctx)
	assert.Equal(t, "Bangalore", again[0].Name)

	c, err := s.GetByName(ctx, "kolkata")
	require.NoError(t, err)
	assert.Equal(t, "Kolkata", c.Name)
	assert.Equal(t, 7.5, c.ElectricityRate)

	_, err = s.GetByName(ctx, "Atlantis")
	assert.ErrorIs(t, err, energy.ErrUnknownCity)
}
