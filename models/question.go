package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Question statuses. A question never transitions automatically; only
// marking a best answer moves it from open to answered.
const (
	QuestionStatusOpen     = "open"
	QuestionStatusAnswered = "answered"
	QuestionStatusClosed   = "closed"
)

// Question holds the structure for the questions collection in mongo
type Question struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Title       string             `json:"title" bson:"title"`
	Content     string             `json:"content" bson:"content"`
	Category    string             `json:"category" bson:"category"`
	Tags        []string           `json:"tags" bson:"tags"`
	Status      string             `json:"status" bson:"status"`
	LikesCount  int64              `json:"likesCount" bson:"likesCount"`
	ViewsCount  int64              `json:"viewsCount" bson:"viewsCount"`
	AIGenerated bool               `json:"aiGenerated" bson:"aiGenerated"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// QuestionFeedItem is a question joined with its author and aggregate
// counts, the shape the feed page renders.
type QuestionFeedItem struct {
	Question     `bson:",inline"`
	Author       *User `json:"author,omitempty" bson:"author,omitempty"`
	AnswersCount int64 `json:"answersCount" bson:"answersCount"`
}

// QuestionListResponse is the paginated feed payload.
type QuestionListResponse struct {
	Questions   []QuestionFeedItem `json:"questions"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}
