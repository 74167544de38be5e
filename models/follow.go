package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Follow joins a follower to a followed user. One follow per pair.
type Follow struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	FollowerID  primitive.ObjectID `json:"followerId" bson:"followerId"`
	FollowingID primitive.ObjectID `json:"followingId" bson:"followingId"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
