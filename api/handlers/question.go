package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

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

// pageSize is the fixed page size for every listing endpoint
const pageSize = 10

// Question exported for testing purposes
type Question struct {
	DB   databases.QuestionDatabase
	ADB  databases.AnswerDatabase
	QLDB databases.QuestionLikeDatabase
	AI   gemini.Client
}

type createQuestionRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// getPage reads the 1-based page query param, defaulting to 1.
func getPage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		zap.S().Warnf("cannot process page number, using 1. Got: %v", raw)
		return 1
	}
	return page
}

// QuestionsHandler returns the paginated question feed joined with authors
// and answer counts
func (q Question) QuestionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	category := r.URL.Query().Get("category")
	sort := r.URL.Query().Get("sort")
	page := getPage(r)

	filter := bson.M{}
	if category != "" && category != "all" {
		filter["category"] = category
	}

	var sortStage bson.D
	switch sort {
	case "oldest":
		sortStage = bson.D{{Key: "createdAt", Value: 1}}
	case "popular":
		sortStage = bson.D{{Key: "likesCount", Value: -1}}
	case "mostAnswered":
		sortStage = bson.D{{Key: "answersCount", Value: -1}}
	default:
		sortStage = bson.D{{Key: "createdAt", Value: -1}}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$match", Value: filter}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "answers",
			"localField":   "_id",
			"foreignField": "questionId",
			"as":           "answerDocs",
		}}},
		{{Key: "$addFields", Value: bson.M{"answersCount": bson.M{"$size": "$answerDocs"}}}},
		{{Key: "$project", Value: bson.M{"answerDocs": 0}}},
		{{Key: "$sort", Value: sortStage}},
		{{Key: "$skip", Value: int64((page - 1) * pageSize)}},
		{{Key: "$limit", Value: int64(pageSize)}},
	}

	var feed []models.QuestionFeedItem
	if err := q.DB.Aggregate(ctx, pipeline, &feed); err != nil {
		config.ErrorStatus("failed to get questions", http.StatusInternalServerError, w, err)
		return
	}
	if len(feed) == 0 {
		feed = []models.QuestionFeedItem{}
	}

	totalCount, err := q.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count questions", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.QuestionListResponse{
		Questions:   feed,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(pageSize))),
		CurrentPage: page,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateQuestionHandler creates a question and then attempts one AI-drafted
// answer. The AI call is best-effort: on failure the question creation still
// succeeds and no answer row exists.
func (q Question) CreateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.Title == "" || req.Content == "" || req.Category == "" {
		config.ErrorStatus("title, content, and category are required", http.StatusBadRequest, w, fmt.Errorf("missing required field"))
		return
	}
	if !models.ValidCategory(req.Category) {
		config.ErrorStatus("invalid category", http.StatusBadRequest, w, fmt.Errorf("unknown category %q", req.Category))
		return
	}

	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	if req.Tags == nil {
		req.Tags = []string{}
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	question := models.Question{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		Status:     models.QuestionStatusOpen,
		LikesCount: 0,
		ViewsCount: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := q.DB.InsertOne(ctx, question); err != nil {
		config.ErrorStatus("failed to create question", http.StatusInternalServerError, w, err)
		return
	}

	// AI answer generation is awaited but never fatal. The question stays
	// open either way.
	if aiText, aiErr := q.AI.GenerateAnswer(r.Context(), req.Content); aiErr != nil {
		zap.S().Warnw("failed to generate AI answer", "error", aiErr, "questionId", question.ID.Hex())
	} else {
		answer := models.Answer{
			ID:            primitive.NewObjectID(),
			QuestionID:    question.ID,
			Content:       aiText,
			IsAIGenerated: true,
			CreatedAt:     primitive.NewDateTimeFromTime(time.Now()),
			UpdatedAt:     primitive.NewDateTimeFromTime(time.Now()),
		}
		// the provider call can outlive the question-insert context, so the
		// answer insert gets a fresh one
		insCtx, insCancel := api.WithQueryTimeout(r.Context())
		if err := q.ADB.InsertOne(insCtx, answer); err != nil {
			zap.S().Warnw("failed to insert AI answer", "error", err, "questionId", question.ID.Hex())
		}
		insCancel()
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(question)
}

// QuestionByIDHandler returns a question by ID and bumps its view counter
func (q Question) QuestionByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	questionID := mux.Vars(r)["question_id"]

	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := q.DB.FindOne(ctx, bson.M{"_id": qID})
	if err != nil {
		config.ErrorStatus("failed to get question by ID", http.StatusNotFound, w, err)
		return
	}

	if err := q.DB.UpdateOne(ctx, bson.M{"_id": qID}, bson.M{"$inc": bson.M{"viewsCount": 1}}); err != nil {
		zap.S().Warnw("failed to increment view count", "error", err, "questionId", questionID)
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LikeQuestionHandler records one like per (user, question) and bumps the
// counter. A duplicate like is a conflict.
func (q Question) LikeQuestionHandler(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["question_id"]

	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := q.DB.FindOne(ctx, bson.M{"_id": qID}); err != nil {
		config.ErrorStatus("failed to get question by ID", http.StatusNotFound, w, err)
		return
	}

	count, err := q.QLDB.CountDocuments(ctx, bson.M{"userId": userID, "questionId": qID})
	if err != nil {
		config.ErrorStatus("failed to check existing like", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("question already liked", http.StatusConflict, w, fmt.Errorf("duplicate like"))
		return
	}

	like := models.QuestionLike{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		QuestionID: qID,
		CreatedAt:  primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := q.QLDB.InsertOne(ctx, like); err != nil {
		config.ErrorStatus("failed to like question", http.StatusInternalServerError, w, err)
		return
	}
	if err := q.DB.UpdateOne(ctx, bson.M{"_id": qID}, bson.M{"$inc": bson.M{"likesCount": 1}}); err != nil {
		zap.S().Warnw("failed to increment like count", "error", err, "questionId", questionID)
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Question liked"})
}

// UnlikeQuestionHandler removes a like and decrements the counter
func (q Question) UnlikeQuestionHandler(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["question_id"]

	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := q.QLDB.CountDocuments(ctx, bson.M{"userId": userID, "questionId": qID})
	if err != nil {
		config.ErrorStatus("failed to check existing like", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("like not found", http.StatusNotFound, w, fmt.Errorf("no like to remove"))
		return
	}

	if err := q.QLDB.DeleteOne(ctx, bson.M{"userId": userID, "questionId": qID}); err != nil {
		config.ErrorStatus("failed to unlike question", http.StatusInternalServerError, w, err)
		return
	}
	if err := q.DB.UpdateOne(ctx, bson.M{"_id": qID}, bson.M{"$inc": bson.M{"likesCount": -1}}); err != nil {
		zap.S().Warnw("failed to decrement like count", "error", err, "questionId", questionID)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Question unliked"})
}
