package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/models"
)

// Rating exported for testing purposes
type Rating struct {
	DB  databases.RatingDatabase
	LDB databases.LawyerProfileDatabase
}

type createRatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ratingAggregate struct {
	Average float64 `bson:"average"`
	Count   int64   `bson:"count"`
}

// CreateRatingHandler stores a 1-5 star review for a lawyer and recomputes
// the profile's averageRating and totalReviews before responding
func (rt Rating) CreateRatingHandler(w http.ResponseWriter, r *http.Request) {
	lawyerID := mux.Vars(r)["lawyer_id"]

	lID, err := primitive.ObjectIDFromHex(lawyerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	var req createRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		config.ErrorStatus("rating must be between 1 and 5", http.StatusBadRequest, w, fmt.Errorf("got %d", req.Rating))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := rt.LDB.FindOne(ctx, bson.M{"_id": lID}); err != nil {
		config.ErrorStatus("failed to get lawyer by ID", http.StatusNotFound, w, err)
		return
	}

	rating := models.Rating{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		LawyerID:  lID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := rt.DB.InsertOne(ctx, rating); err != nil {
		config.ErrorStatus("failed to create rating", http.StatusInternalServerError, w, err)
		return
	}

	if err := rt.reconcileLawyerRating(r, lID); err != nil {
		config.ErrorStatus("failed to update lawyer rating", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rating)
}

// RatingsByLawyerIDHandler lists a lawyer's reviews, newest first
func (rt Rating) RatingsByLawyerIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	lawyerID := mux.Vars(r)["lawyer_id"]

	lID, err := primitive.ObjectIDFromHex(lawyerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var ratings []models.Rating
	if err := rt.DB.Aggregate(ctx, []bson.D{
		{{Key: "$match", Value: bson.M{"lawyerId": lID}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}, &ratings); err != nil {
		config.ErrorStatus("failed to get ratings", http.StatusInternalServerError, w, err)
		return
	}
	if len(ratings) == 0 {
		ratings = []models.Rating{}
	}

	b, err := json.Marshal(ratings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// reconcileLawyerRating recomputes the aggregates from the ratings
// collection so the profile never drifts from its source of truth.
func (rt Rating) reconcileLawyerRating(r *http.Request, lawyerID primitive.ObjectID) error {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var agg []ratingAggregate
	err := rt.DB.Aggregate(ctx, []bson.D{
		{{Key: "$match", Value: bson.M{"lawyerId": lawyerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$lawyerId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}, &agg)
	if err != nil {
		return err
	}

	average, count := 0.0, int64(0)
	if len(agg) > 0 {
		// round to one decimal place for display
		average = math.Round(agg[0].Average*10) / 10
		count = agg[0].Count
	}

	return rt.LDB.UpdateOne(ctx, bson.M{"_id": lawyerID}, bson.M{"$set": bson.M{
		"averageRating": average,
		"totalReviews":  count,
		"updatedAt":     primitive.NewDateTimeFromTime(time.Now()),
	}})
}
