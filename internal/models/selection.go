package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectionFilledUp is set on a SelectedClass once the referenced class
// has no seats left. The record is kept so the student still sees the
// class in their cart, just no longer payable.
const SelectionFilledUp = "Filled Up"

// SelectedClass records a student's pending interest in a class. At
// most one active document exists per (classId, studentEmail) pair,
// backed by a unique compound index.
type SelectedClass struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassID        primitive.ObjectID `json:"classId" bson:"classId"`
	StudentEmail   string             `json:"studentEmail" bson:"studentEmail"`
	ClassName      string             `json:"className" bson:"className"`
	Image          string             `json:"image" bson:"image"`
	InstructorName string             `json:"instructorName" bson:"instructorName"`
	Price          float64            `json:"price" bson:"price"`
	Status         string             `json:"status,omitempty" bson:"status,omitempty"`
	SelectedAt     time.Time          `json:"selected_at" bson:"selected_at"`
}
