package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// QuestionLike joins a user to a liked question. One like per pair,
// enforced by the handlers before insert.
type QuestionLike struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	QuestionID primitive.ObjectID `json:"questionId" bson:"questionId"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// AnswerLike joins a user to a liked answer. One like per pair.
type AnswerLike struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	AnswerID  primitive.ObjectID `json:"answerId" bson:"answerId"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
