package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// ParseRole normalizes a stored or submitted role value. Historical
// documents carry mixed casing ("Instructor" vs "instructor"), so
// comparison is always done on the lower-cased form.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleInstructor:
		return RoleInstructor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name" bson:"name"`
	Image     string             `json:"image" bson:"image"`
	Gender    string             `json:"gender" bson:"gender"`
	Role      UserRole           `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// InstructorWithClasses is the shape produced by joining an instructor
// against their approved class offerings.
type InstructorWithClasses struct {
	User    `bson:",inline"`
	Classes []ClassOffering `bson:"classes"`
}
