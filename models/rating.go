package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rating holds the structure for the ratings collection in mongo.
// LawyerID references the lawyer profile, not the user.
type Rating struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	LawyerID  primitive.ObjectID `json:"lawyerId" bson:"lawyerId"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
