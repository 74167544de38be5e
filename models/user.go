package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user account can hold. Role is fixed at creation and only
// changes through the admin role endpoint.
const (
	RoleClient = "client"
	RoleLawyer = "lawyer"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleLawyer || role == RoleAdmin
}

// User holds the structure for the users collection in mongo
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	FullName  string             `json:"fullName" bson:"fullName"`
	AvatarURL string             `json:"avatarUrl" bson:"avatarUrl"`
	Role      string             `json:"role" bson:"role"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
