package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const followCollectionName = "follows"

// FollowDatabase contains the methods to use with the follow database
type FollowDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Follow, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	InsertOne(context.Context, models.Follow) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type followDatabase struct {
	db DatabaseHelper
}

// NewFollowDatabase initializes a new instance of follow database with the provided db connection
func NewFollowDatabase(db DatabaseHelper) FollowDatabase {
	return &followDatabase{
		db: db,
	}
}

func (f *followDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Follow, error) {
	var follows []models.Follow
	cur, err := f.db.Collection(followCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&follows)
	if err != nil {
		return nil, err
	}
	return follows, nil
}

func (f *followDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return f.db.Collection(followCollectionName).CountDocuments(ctx, filter, opts...)
}

func (f *followDatabase) InsertOne(ctx context.Context, follow models.Follow) error {
	_, err := f.db.Collection(followCollectionName).InsertOne(ctx, follow)
	return err
}

func (f *followDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return f.db.Collection(followCollectionName).DeleteOne(ctx, filter, opts...)
}
