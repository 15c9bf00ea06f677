package history

import (
	"errors"

	"github.com/buildsense/energy-backend/internal/energy"
)

var ErrInvalidIndex = errors.New("invalid state indices")

// Change is one differing field between two designs.
// Field uses dotted paths such as "facades.north.wwr" or "skylight.width".
type Change struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}

// Diff lists facade and skylight fields that differ from a to b.
// Name and identity fields are not compared.
func Diff(a, b energy.BuildingDesign) []Change {
	changes := []Change{}

	bf := b.Facades.Each()
	for i, of := range a.Facades.Each() {
		other := bf[i].Facade
		prefix := "facades." + string(of.Orientation) + "."
		changes = appendIfDiff(changes, prefix+"height", of.Facade.Height, other.Height)
		changes = appendIfDiff(changes, prefix+"width", of.Facade.Width, other.Width)
		changes = appendIfDiff(changes, prefix+"wwr", of.Facade.WWR, other.WWR)
		changes = appendIfDiff(changes, prefix+"shgc", of.Facade.SHGC, other.SHGC)
	}

	switch {
	case a.Skylight == nil && b.Skylight == nil:
	case a.Skylight == nil || b.Skylight == nil:
		changes = append(changes, Change{Field: "skylight", From: a.Skylight, To: b.Skylight})
	default:
		changes = appendIfDiff(changes, "skylight.width", a.Skylight.Width, b.Skylight.Width)
		changes = appendIfDiff(changes, "skylight.length", a.Skylight.Length, b.Skylight.Length)
	}

	return changes
}

func appendIfDiff(changes []Change, field string, from, to float64) []Change {
	if from == to {
		return changes
	}
	return append(changes, Change{Field: field, From: from, To: to})
}
