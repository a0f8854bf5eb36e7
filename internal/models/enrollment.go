package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrolledClass is the immutable record of a paid enrollment. Created
// only by the payment workflow, never updated.
type EnrolledClass struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassID        primitive.ObjectID `json:"classId" bson:"classId"`
	StudentEmail   string             `json:"studentEmail" bson:"studentEmail"`
	ClassName      string             `json:"className" bson:"className"`
	Image          string             `json:"image" bson:"image"`
	InstructorName string             `json:"instructorName" bson:"instructorName"`
	Price          float64            `json:"price" bson:"price"`
	TransactionID  string             `json:"transactionId" bson:"transactionId"`
	PaidAt         time.Time          `json:"paidAt" bson:"paidAt"`
}
