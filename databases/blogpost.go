package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const blogPostCollectionName = "blogPosts"

// BlogPostDatabase contains the methods to use with the blog post database
type BlogPostDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.BlogPost, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.BlogPost, error)
	FindPage(ctx context.Context, filter interface{}, sort interface{}, limit, page int) ([]models.BlogPost, error)
	InsertOne(context.Context, models.BlogPost) error
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type blogPostDatabase struct {
	db DatabaseHelper
}

// NewBlogPostDatabase initializes a new instance of blog post database with the provided db connection
func NewBlogPostDatabase(db DatabaseHelper) BlogPostDatabase {
	return &blogPostDatabase{
		db: db,
	}
}

func (b *blogPostDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	err := b.db.Collection(blogPostCollectionName).FindOne(ctx, filter, opts...).Decode(&post)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (b *blogPostDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	cur, err := b.db.Collection(blogPostCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPage returns one page of posts, 1-based page numbering.
func (b *blogPostDatabase) FindPage(ctx context.Context, filter interface{}, sort interface{}, limit, page int) ([]models.BlogPost, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(sort)
	return b.Find(ctx, filter, opts)
}

func (b *blogPostDatabase) InsertOne(ctx context.Context, post models.BlogPost) error {
	_, err := b.db.Collection(blogPostCollectionName).InsertOne(ctx, post)
	return err
}

func (b *blogPostDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := b.db.Collection(blogPostCollectionName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (b *blogPostDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return b.db.Collection(blogPostCollectionName).CountDocuments(ctx, filter, opts...)
}
