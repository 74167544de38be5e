package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Blog post statuses. Drafts are AI-generated from a question; only the
// admin surface moves a post to published or rejected.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPending   = "pending"
	BlogStatusPublished = "published"
	BlogStatusRejected  = "rejected"
)

// BlogPost holds the structure for the blogPosts collection in mongo
type BlogPost struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id"`
	QuestionID  primitive.ObjectID  `json:"questionId" bson:"questionId"`
	AuthorID    primitive.ObjectID  `json:"authorId" bson:"authorId"`
	Title       string              `json:"title" bson:"title"`
	Slug        string              `json:"slug" bson:"slug"`
	Content     string              `json:"content" bson:"content"`
	Excerpt     string              `json:"excerpt" bson:"excerpt"`
	Tags        []string            `json:"tags" bson:"tags"`
	Status      string              `json:"status" bson:"status"`
	ViewsCount  int64               `json:"viewsCount" bson:"viewsCount"`
	PublishedAt *primitive.DateTime `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt   primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// BlogListResponse is the paginated published-posts payload.
type BlogListResponse struct {
	Posts       []BlogPost `json:"posts"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}
