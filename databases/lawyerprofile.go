package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const lawyerProfileCollectionName = "lawyerProfiles"

// LawyerProfileDatabase contains the methods to use with the lawyer profile database
type LawyerProfileDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.LawyerProfile, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.LawyerProfile, error)
	FindPage(ctx context.Context, filter interface{}, sort interface{}, limit, page int) ([]models.LawyerProfile, error)
	InsertOne(context.Context, models.LawyerProfile) error
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type lawyerProfileDatabase struct {
	db DatabaseHelper
}

// NewLawyerProfileDatabase initializes a new instance of lawyer profile database with the provided db connection
func NewLawyerProfileDatabase(db DatabaseHelper) LawyerProfileDatabase {
	return &lawyerProfileDatabase{
		db: db,
	}
}

func (l *lawyerProfileDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.LawyerProfile, error) {
	profile := &models.LawyerProfile{}
	err := l.db.Collection(lawyerProfileCollectionName).FindOne(ctx, filter, opts...).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (l *lawyerProfileDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LawyerProfile, error) {
	var profiles []models.LawyerProfile
	cur, err := l.db.Collection(lawyerProfileCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&profiles)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindPage returns one page of profiles, 1-based page numbering.
func (l *lawyerProfileDatabase) FindPage(ctx context.Context, filter interface{}, sort interface{}, limit, page int) ([]models.LawyerProfile, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(sort)
	return l.Find(ctx, filter, opts)
}

func (l *lawyerProfileDatabase) InsertOne(ctx context.Context, profile models.LawyerProfile) error {
	_, err := l.db.Collection(lawyerProfileCollectionName).InsertOne(ctx, profile)
	return err
}

func (l *lawyerProfileDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := l.db.Collection(lawyerProfileCollectionName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (l *lawyerProfileDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return l.db.Collection(lawyerProfileCollectionName).CountDocuments(ctx, filter, opts...)
}

func (l *lawyerProfileDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cur, err := l.db.Collection(lawyerProfileCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.Decode(results)
}
