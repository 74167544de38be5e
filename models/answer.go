package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Answer holds the structure for the answers collection in mongo.
// UserID is unset on AI-generated answers.
type Answer struct {
	ID            primitive.ObjectID  `json:"_id" bson:"_id"`
	QuestionID    primitive.ObjectID  `json:"questionId" bson:"questionId"`
	UserID        *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Content       string              `json:"content" bson:"content"`
	IsAIGenerated bool                `json:"isAiGenerated" bson:"isAiGenerated"`
	IsBestAnswer  bool                `json:"isBestAnswer" bson:"isBestAnswer"`
	LikesCount    int64               `json:"likesCount" bson:"likesCount"`
	CreatedAt     primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// AnswerWithAuthor is an answer joined with its author for rendering.
type AnswerWithAuthor struct {
	Answer `bson:",inline"`
	Author *User `json:"author,omitempty" bson:"author,omitempty"`
}
