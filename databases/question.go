package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const questionCollectionName = "questions"

// QuestionDatabase contains the methods to use with the question database
type QuestionDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Question, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Question, error)
	InsertOne(context.Context, models.Question) error
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type questionDatabase struct {
	db DatabaseHelper
}

// NewQuestionDatabase initializes a new instance of question database with the provided db connection
func NewQuestionDatabase(db DatabaseHelper) QuestionDatabase {
	return &questionDatabase{
		db: db,
	}
}

func (q *questionDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Question, error) {
	question := &models.Question{}
	err := q.db.Collection(questionCollectionName).FindOne(ctx, filter, opts...).Decode(&question)
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (q *questionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Question, error) {
	var questions []models.Question
	cur, err := q.db.Collection(questionCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&questions)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *questionDatabase) InsertOne(ctx context.Context, question models.Question) error {
	_, err := q.db.Collection(questionCollectionName).InsertOne(ctx, question)
	return err
}

func (q *questionDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := q.db.Collection(questionCollectionName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (q *questionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return q.db.Collection(questionCollectionName).CountDocuments(ctx, filter, opts...)
}

func (q *questionDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cur, err := q.db.Collection(questionCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.Decode(results)
}
