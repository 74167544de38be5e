package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/gemini"
	"github.com/lawconnect/lawconnect-api/models"
)

// Blog exported for testing purposes
type Blog struct {
	DB  databases.BlogPostDatabase
	QDB databases.QuestionDatabase
	ADB databases.AnswerDatabase
	AI  gemini.Client
}

type createBlogDraftRequest struct {
	QuestionID string `json:"questionId"`
}

// CreateBlogDraftHandler turns an answered question into an AI-drafted blog
// post. A malformed provider response fails the request, nothing is stored.
func (b Blog) CreateBlogDraftHandler(w http.ResponseWriter, r *http.Request) {
	var req createBlogDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	qID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	authorID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	question, err := b.QDB.FindOne(ctx, bson.M{"_id": qID})
	if err != nil {
		config.ErrorStatus("failed to get question by ID", http.StatusNotFound, w, err)
		return
	}

	answers, err := b.ADB.Find(ctx, bson.M{"questionId": qID})
	if err != nil {
		config.ErrorStatus("failed to get answers", http.StatusInternalServerError, w, err)
		return
	}
	answerTexts := make([]string, 0, len(answers))
	for _, a := range answers {
		answerTexts = append(answerTexts, a.Content)
	}

	draft, err := b.AI.GenerateBlogDraft(r.Context(), question.Content, answerTexts)
	if err != nil {
		config.ErrorStatus("failed to generate blog draft", http.StatusInternalServerError, w, err)
		return
	}

	slug, err := b.uniqueSlug(r, draft.Title)
	if err != nil {
		config.ErrorStatus("failed to build slug", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	post := models.BlogPost{
		ID:         primitive.NewObjectID(),
		QuestionID: qID,
		AuthorID:   authorID,
		Title:      draft.Title,
		Slug:       slug,
		Content:    draft.Content,
		Excerpt:    draft.Excerpt,
		Tags:       question.Tags,
		Status:     models.BlogStatusDraft,
		ViewsCount: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := b.DB.InsertOne(ctx, post); err != nil {
		config.ErrorStatus("failed to create blog post", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// BlogPostsHandler lists published posts, newest published first
func (b Blog) BlogPostsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	page := getPage(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{"status": models.BlogStatusPublished}
	posts, err := b.DB.FindPage(ctx, filter, bson.D{{Key: "publishedAt", Value: -1}}, pageSize, page)
	if err != nil {
		config.ErrorStatus("failed to get blog posts", http.StatusInternalServerError, w, err)
		return
	}
	if len(posts) == 0 {
		posts = []models.BlogPost{}
	}

	totalCount, err := b.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count blog posts", http.StatusInternalServerError, w, err)
		return
	}

	resp, err := json.Marshal(models.BlogListResponse{
		Posts:       posts,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(pageSize))),
		CurrentPage: page,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}

// BlogPostBySlugHandler returns a published post by slug and bumps its view
// counter. Unpublished posts stay invisible here.
func (b Blog) BlogPostBySlugHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	slug := mux.Vars(r)["slug"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	post, err := b.DB.FindOne(ctx, bson.M{"slug": slug, "status": models.BlogStatusPublished})
	if err != nil {
		config.ErrorStatus("failed to get blog post by slug", http.StatusNotFound, w, err)
		return
	}

	if err := b.DB.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$inc": bson.M{"viewsCount": 1}}); err != nil {
		zap.S().Warnw("failed to increment view count", "error", err, "slug", slug)
	}

	resp, err := json.Marshal(post)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}

// uniqueSlug slugifies the title and appends a numeric suffix until the slug
// is free.
func (b Blog) uniqueSlug(r *http.Request, title string) (string, error) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	base := slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for i := 2; ; i++ {
		count, err := b.DB.CountDocuments(ctx, bson.M{"slug": slug})
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// slugify lowercases the title and collapses everything that is not a letter
// or digit into single hyphens.
func slugify(s string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			sb.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(sb.String(), "-")
}
