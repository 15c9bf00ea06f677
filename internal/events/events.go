// Package events publishes building design change notifications.
package events

import (
	"context"
	"time"
)

type Type string

const (
	DesignCreated Type = "design.created"
	DesignUpdated Type = "design.updated"
	DesignDeleted Type = "design.deleted"
)

// Event is the JSON payload written for every design mutation.
type Event struct {
	Type             Type      `json:"type"`
	BuildingDesignID string    `json:"buildingDesignId"`
	BuildingID       string    `json:"buildingId,omitempty"`
	Name             string    `json:"name,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// Key is the partition key. Revisions of one building land on the same partition.
func (e Event) Key() string {
	if e.BuildingID != "" {
		return e.BuildingID
	}
	return e.BuildingDesignID
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop drops every event. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
