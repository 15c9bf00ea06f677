package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillGlazingDefaults(t *testing.T) {
	in := Facades{
		North: Facade{Height: 3, Width: 10},
		South: Facade{Height: 3, Width: 10, WWR: 0.6},
		East:  Facade{Height: 3, Width: 8, WWR: 0.2, SHGC: 0.7},
		West:  Facade{Height: 3, Width: 8, SHGC: 0.9},
	}

	out, changed := FillGlazingDefaults(in)

	assert.True(t, changed)
	assert.Equal(t, Facade{Height: 3, Width: 10, WWR: 0.25, SHGC: 0.5}, out.North)
	assert.Equal(t, Facade{Height: 3, Width: 10, WWR: 0.6, SHGC: 0.3}, out.South)
	assert.Equal(t, in.East, out.East)
	assert.Equal(t, Facade{Height: 3, Width: 8, WWR: 0.3, SHGC: 0.9}, out.West)
}

func TestFillGlazingDefaults_Complete(t *testing.T) {
	in := Facades{
		North: Facade{Height: 3, Width: 10, WWR: 0.2, SHGC: 0.4},
		South: Facade{Height: 3, Width: 10, WWR: 0.2, SHGC: 0.4},
		East:  Facade{Height: 3, Width: 10, WWR: 0.2, SHGC: 0.4},
		West:  Facade{Height: 3, Width: 10, WWR: 0.2, SHGC: 0.4},
	}
	out, changed := FillGlazingDefaults(in)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}
