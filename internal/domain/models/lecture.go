package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lecture is one scheduled event from the lecture feed.
//
// Lectures are written by an external ingestion process; this service only
// reads them. Field names follow the feed's camelCase documents.
type Lecture struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	LectureName string             `bson:"lectureName" json:"lectureName"`
	ShortName   string             `bson:"shortName,omitempty" json:"shortName,omitempty"`

	// StartTime <= EndTime is guaranteed by the feed.
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`

	Rooms   []string `bson:"rooms" json:"rooms"`
	Groups  []string `bson:"groups" json:"groups"`
	Docents []string `bson:"docents,omitempty" json:"docents,omitempty"`
}
