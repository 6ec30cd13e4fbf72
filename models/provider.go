package models

import (
	"strconv"
	"time"
)

// WorkingHours is one weekday's declaration: either not working, or a single
// window ("09:00-17:00") with a slot duration in minutes.
type WorkingHours struct {
	Working         bool   `bson:"working" json:"working"`
	Window          string `bson:"window,omitempty" json:"window,omitempty"`
	SlotDurationMin int    `bson:"slotDurationMin,omitempty" json:"slotDurationMin,omitempty"`
}

// Provider is a clinic provider profile. Hours is keyed by weekday number as
// a string ("0" = Sunday .. "6" = Saturday) so it maps cleanly to a BSON
// document.
type Provider struct {
	ID        string                  `bson:"id" json:"id"`
	Name      string                  `bson:"name" json:"name"`
	Specialty string                  `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Active    bool                    `bson:"active" json:"active"`
	Hours     map[string]WorkingHours `bson:"hours,omitempty" json:"hours,omitempty"`
	CreatedAt time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// HoursFor returns the declaration for the given weekday. The second return
// is false when the provider has no entry for that day at all.
func (p Provider) HoursFor(day time.Weekday) (WorkingHours, bool) {
	wh, ok := p.Hours[strconv.Itoa(int(day))]
	return wh, ok
}
