package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

// ClassOffering is a class published by an instructor. Seat counts are
// mutated only by the enrollment workflow; status is driven by admin
// review. BSON field names match the documents written by earlier
// versions of the platform.
type ClassOffering struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassName        string             `json:"className" bson:"className"`
	Image            string             `json:"image" bson:"image"`
	InstructorName   string             `json:"instructorName" bson:"instructorName"`
	InstructorEmail  string             `json:"instructorEmail" bson:"instructorEmail"`
	Price            float64            `json:"price" bson:"price"`
	AvailableSeats   int64              `json:"availableSeats" bson:"availableSeats"`
	EnrolledStudents int64              `json:"EnrolledStudents" bson:"EnrolledStudents"`
	Status           ClassStatus        `json:"status" bson:"status"`
	Feedback         string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}
