package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const answerCollectionName = "answers"

// AnswerDatabase contains the methods to use with the answer database
type AnswerDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Answer, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Answer, error)
	InsertOne(context.Context, models.Answer) error
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	UpdateMany(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type answerDatabase struct {
	db DatabaseHelper
}

// NewAnswerDatabase initializes a new instance of answer database with the provided db connection
func NewAnswerDatabase(db DatabaseHelper) AnswerDatabase {
	return &answerDatabase{
		db: db,
	}
}

func (a *answerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Answer, error) {
	answer := &models.Answer{}
	err := a.db.Collection(answerCollectionName).FindOne(ctx, filter, opts...).Decode(&answer)
	if err != nil {
		return nil, err
	}
	return answer, nil
}

func (a *answerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Answer, error) {
	var answers []models.Answer
	cur, err := a.db.Collection(answerCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&answers)
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (a *answerDatabase) InsertOne(ctx context.Context, answer models.Answer) error {
	_, err := a.db.Collection(answerCollectionName).InsertOne(ctx, answer)
	return err
}

func (a *answerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := a.db.Collection(answerCollectionName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (a *answerDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := a.db.Collection(answerCollectionName).UpdateMany(ctx, filter, update, opts...)
	return err
}

func (a *answerDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(answerCollectionName).CountDocuments(ctx, filter, opts...)
}

func (a *answerDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cur, err := a.db.Collection(answerCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.Decode(results)
}
