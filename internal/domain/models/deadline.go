package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deadline is a dated submission obligation tied to a group.
//
// NOTE:
//   - Optional fields are pointers so "absent" and "empty" stay distinct.
//   - Info and CreatedBy are written once at creation.
//   - The display color is derived from Group and never stored.
type Deadline struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Info             string             `bson:"info" json:"info"`
	Deadline         time.Time          `bson:"deadline" json:"deadline"`
	ShortLectureName *string            `bson:"shortLectureName,omitempty" json:"shortLectureName,omitempty"`
	Group            *string            `bson:"group,omitempty" json:"group,omitempty"`
	CreatedBy        *string            `bson:"createdBy,omitempty" json:"createdBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GroupName returns the deadline's group or "" when none was given.
func (d Deadline) GroupName() string {
	if d.Group == nil {
		return ""
	}
	return *d.Group
}
