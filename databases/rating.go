package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const ratingCollectionName = "ratings"

// RatingDatabase contains the methods to use with the rating database
type RatingDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Rating, error)
	InsertOne(context.Context, models.Rating) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type ratingDatabase struct {
	db DatabaseHelper
}

// NewRatingDatabase initializes a new instance of rating database with the provided db connection
func NewRatingDatabase(db DatabaseHelper) RatingDatabase {
	return &ratingDatabase{
		db: db,
	}
}

func (r *ratingDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Rating, error) {
	var ratings []models.Rating
	cur, err := r.db.Collection(ratingCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&ratings)
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingDatabase) InsertOne(ctx context.Context, rating models.Rating) error {
	_, err := r.db.Collection(ratingCollectionName).InsertOne(ctx, rating)
	return err
}

func (r *ratingDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return r.db.Collection(ratingCollectionName).CountDocuments(ctx, filter, opts...)
}

func (r *ratingDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cur, err := r.db.Collection(ratingCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.Decode(results)
}
