package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const (
	questionLikeCollectionName = "questionLikes"
	answerLikeCollectionName   = "answerLikes"
)

// QuestionLikeDatabase contains the methods to use with the question like database
type QuestionLikeDatabase interface {
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	InsertOne(context.Context, models.QuestionLike) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type questionLikeDatabase struct {
	db DatabaseHelper
}

// NewQuestionLikeDatabase initializes a new instance of question like database with the provided db connection
func NewQuestionLikeDatabase(db DatabaseHelper) QuestionLikeDatabase {
	return &questionLikeDatabase{
		db: db,
	}
}

func (q *questionLikeDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return q.db.Collection(questionLikeCollectionName).CountDocuments(ctx, filter, opts...)
}

func (q *questionLikeDatabase) InsertOne(ctx context.Context, like models.QuestionLike) error {
	_, err := q.db.Collection(questionLikeCollectionName).InsertOne(ctx, like)
	return err
}

func (q *questionLikeDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return q.db.Collection(questionLikeCollectionName).DeleteOne(ctx, filter, opts...)
}

// AnswerLikeDatabase contains the methods to use with the answer like database
type AnswerLikeDatabase interface {
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	InsertOne(context.Context, models.AnswerLike) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type answerLikeDatabase struct {
	db DatabaseHelper
}

// NewAnswerLikeDatabase initializes a new instance of answer like database with the provided db connection
func NewAnswerLikeDatabase(db DatabaseHelper) AnswerLikeDatabase {
	return &answerLikeDatabase{
		db: db,
	}
}

func (a *answerLikeDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(answerLikeCollectionName).CountDocuments(ctx, filter, opts...)
}

func (a *answerLikeDatabase) InsertOne(ctx context.Context, like models.AnswerLike) error {
	_, err := a.db.Collection(answerLikeCollectionName).InsertOne(ctx, like)
	return err
}

func (a *answerLikeDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return a.db.Collection(answerLikeCollectionName).DeleteOne(ctx, filter, opts...)
}
