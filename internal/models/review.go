package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review is public, read-only content shown on the landing page.
type Review struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name   string             `json:"name" bson:"name"`
	Image  string             `json:"image" bson:"image"`
	Rating float64            `json:"rating" bson:"rating"`
	Text   string             `json:"text" bson:"text"`
}
