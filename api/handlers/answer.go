package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/models"
)

// Answer exported for testing purposes
type Answer struct {
	DB   databases.AnswerDatabase
	QDB  databases.QuestionDatabase
	ALDB databases.AnswerLikeDatabase
}

type createAnswerRequest struct {
	Content string `json:"content"`
}

// CreateAnswerHandler adds a human-authored answer to an open question
func (a Answer) CreateAnswerHandler(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["question_id"]

	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req createAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Content == "" {
		config.ErrorStatus("content is required", http.StatusBadRequest, w, fmt.Errorf("missing required field"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	question, err := a.QDB.FindOne(ctx, bson.M{"_id": qID})
	if err != nil {
		config.ErrorStatus("failed to get question by ID", http.StatusNotFound, w, err)
		return
	}
	if question.Status == models.QuestionStatusClosed {
		config.ErrorStatus("question is closed", http.StatusConflict, w, fmt.Errorf("cannot answer a closed question"))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	answer := models.Answer{
		ID:            primitive.NewObjectID(),
		QuestionID:    qID,
		UserID:        &userID,
		Content:       req.Content,
		IsAIGenerated: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.DB.InsertOne(ctx, answer); err != nil {
		config.ErrorStatus("failed to create answer", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(answer)
}

// AnswersByQuestionIDHandler lists a question's answers joined with their
// authors. AI-generated answers sort first, then by like count.
func (a Answer) AnswersByQuestionIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	questionID := mux.Vars(r)["question_id"]

	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"questionId": qID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "isAiGenerated", Value: -1},
			{Key: "likesCount", Value: -1},
			{Key: "createdAt", Value: 1},
		}}},
	}

	var answers []models.AnswerWithAuthor
	if err := a.DB.Aggregate(ctx, pipeline, &answers); err != nil {
		config.ErrorStatus("failed to get answers", http.StatusInternalServerError, w, err)
		return
	}
	if len(answers) == 0 {
		answers = []models.AnswerWithAuthor{}
	}

	b, err := json.Marshal(answers)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkBestAnswerHandler lets the question owner mark exactly one best answer.
// Marking clears any previous best answer and moves the question to answered.
func (a Answer) MarkBestAnswerHandler(w http.ResponseWriter, r *http.Request) {
	answerID := mux.Vars(r)["answer_id"]

	aID, err := primitive.ObjectIDFromHex(answerID)
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

	answer, err := a.DB.FindOne(ctx, bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get answer by ID", http.StatusNotFound, w, err)
		return
	}

	question, err := a.QDB.FindOne(ctx, bson.M{"_id": answer.QuestionID})
	if err != nil {
		config.ErrorStatus("failed to get question by ID", http.StatusNotFound, w, err)
		return
	}
	if question.UserID != userID {
		config.ErrorStatus("only the question owner can mark a best answer", http.StatusForbidden, w, fmt.Errorf("user %s does not own question %s", userID.Hex(), question.ID.Hex()))
		return
	}

	if err := a.DB.UpdateMany(ctx,
		bson.M{"questionId": answer.QuestionID, "isBestAnswer": true},
		bson.M{"$set": bson.M{"isBestAnswer": false}},
	); err != nil {
		config.ErrorStatus("failed to clear previous best answer", http.StatusInternalServerError, w, err)
		return
	}
	if err := a.DB.UpdateOne(ctx, bson.M{"_id": aID}, bson.M{"$set": bson.M{"isBestAnswer": true}}); err != nil {
		config.ErrorStatus("failed to mark best answer", http.StatusInternalServerError, w, err)
		return
	}
	if err := a.QDB.UpdateOne(ctx, bson.M{"_id": answer.QuestionID}, bson.M{"$set": bson.M{"status": models.QuestionStatusAnswered}}); err != nil {
		zap.S().Warnw("failed to update question status", "error", err, "questionId", answer.QuestionID.Hex())
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Best answer marked"})
}

// LikeAnswerHandler records one like per (user, answer) and bumps the counter
func (a Answer) LikeAnswerHandler(w http.ResponseWriter, r *http.Request) {
	answerID := mux.Vars(r)["answer_id"]

	aID, err := primitive.ObjectIDFromHex(answerID)
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

	if _, err := a.DB.FindOne(ctx, bson.M{"_id": aID}); err != nil {
		config.ErrorStatus("failed to get answer by ID", http.StatusNotFound, w, err)
		return
	}

	count, err := a.ALDB.CountDocuments(ctx, bson.M{"userId": userID, "answerId": aID})
	if err != nil {
		config.ErrorStatus("failed to check existing like", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("answer already liked", http.StatusConflict, w, fmt.Errorf("duplicate like"))
		return
	}

	like := models.AnswerLike{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		AnswerID:  aID,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := a.ALDB.InsertOne(ctx, like); err != nil {
		config.ErrorStatus("failed to like answer", http.StatusInternalServerError, w, err)
		return
	}
	if err := a.DB.UpdateOne(ctx, bson.M{"_id": aID}, bson.M{"$inc": bson.M{"likesCount": 1}}); err != nil {
		zap.S().Warnw("failed to increment like count", "error", err, "answerId", answerID)
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Answer liked"})
}

// UnlikeAnswerHandler removes a like and decrements the counter
func (a Answer) UnlikeAnswerHandler(w http.ResponseWriter, r *http.Request) {
	answerID := mux.Vars(r)["answer_id"]

	aID, err := primitive.ObjectIDFromHex(answerID)
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

	count, err := a.ALDB.CountDocuments(ctx, bson.M{"userId": userID, "answerId": aID})
	if err != nil {
		config.ErrorStatus("failed to check existing like", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("like not found", http.StatusNotFound, w, fmt.Errorf("no like to remove"))
		return
	}

	if err := a.ALDB.DeleteOne(ctx, bson.M{"userId": userID, "answerId": aID}); err != nil {
		config.ErrorStatus("failed to unlike answer", http.StatusInternalServerError, w, err)
		return
	}
	if err := a.DB.UpdateOne(ctx, bson.M{"_id": aID}, bson.M{"$inc": bson.M{"likesCount": -1}}); err != nil {
		zap.S().Warnw("failed to decrement like count", "error", err, "answerId", answerID)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Answer unliked"})
}
