package domain

import (
	"bytes"
	"encoding/json"

	"github.com/buildsense/energy-backend/internal/energy"
)

// CreateRequest is the body of a design creation. BuildingID defaults to the
// new design's own ID.
type CreateRequest struct {
	BuildingID string           `json:"buildingId"`
	Name       string           `json:"name"`
	Facades    *energy.Facades  `json:"facades"`
	Skylight   *energy.Skylight `json:"skylight"`
}

// Validate reports the first missing or out-of-range field.
func (r CreateRequest) Validate() error {
	if r.Facades == nil {
		return &energy.ValidationError{Field: "facades", Reason: "is required"}
	}
	if err := energy.ValidateFacades(*r.Facades); err != nil {
		return err
	}
	return energy.ValidateSkylight(r.Skylight)
}

// UpdateRequest replaces only the fields present in the body.
type UpdateRequest struct {
	BuildingID *string         `json:"buildingId"`
	Name       *string         `json:"name"`
	Facades    *energy.Facades `json:"facades"`
	Skylight   SkylightPatch   `json:"skylight"`
}

// Validate checks facades only when they are being replaced.
func (r UpdateRequest) Validate() error {
	if r.Facades != nil {
		if err := energy.ValidateFacades(*r.Facades); err != nil {
			return err
		}
	}
	if r.Skylight.Set {
		return energy.ValidateSkylight(r.Skylight.Value)
	}
	return nil
}

// Apply returns d with the requested changes. ID and CreatedAt never change.
func (r UpdateRequest) Apply(d energy.BuildingDesign) energy.BuildingDesign {
	if r.BuildingID != nil && *r.BuildingID != "" {
		d.BuildingID = *r.BuildingID
	}
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.Facades != nil {
		d.Facades = *r.Facades
	}
	if r.Skylight.Set {
		d.Skylight = r.Skylight.Value
	}
	return d
}

// SkylightPatch tells an absent skylight field apart from an explicit null,
// which removes the skylight.
type SkylightPatch struct {
	Set   bool
	Value *energy.Skylight
}

func (p *SkylightPatch) UnmarshalJSON(b []byte) error {
	p.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		p.Value = nil
		return nil
	}
	var s energy.Skylight
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p.Value = &s
	return nil
}
