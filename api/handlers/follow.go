package handlers

import (
	"encoding/json"
	"fmt"
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

// Follow exported for testing purposes
type Follow struct {
	DB  databases.FollowDatabase
	UDB databases.UserDatabase
}

// FollowUserHandler creates a follow edge from the session user to the
// target user. Self-follows and duplicates are rejected.
func (f Follow) FollowUserHandler(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["user_id"]

	tID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	followerID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}
	if tID == followerID {
		config.ErrorStatus("cannot follow yourself", http.StatusBadRequest, w, fmt.Errorf("self follow"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := f.UDB.FindOne(ctx, bson.M{"_id": tID}); err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	count, err := f.DB.CountDocuments(ctx, bson.M{"followerId": followerID, "followingId": tID})
	if err != nil {
		config.ErrorStatus("failed to check existing follow", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("already following this user", http.StatusConflict, w, fmt.Errorf("duplicate follow"))
		return
	}

	follow := models.Follow{
		ID:          primitive.NewObjectID(),
		FollowerID:  followerID,
		FollowingID: tID,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := f.DB.InsertOne(ctx, follow); err != nil {
		config.ErrorStatus("failed to follow user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "User followed"})
}

// UnfollowUserHandler removes the follow edge if it exists
func (f Follow) UnfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["user_id"]

	tID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	followerID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := f.DB.CountDocuments(ctx, bson.M{"followerId": followerID, "followingId": tID})
	if err != nil {
		config.ErrorStatus("failed to check existing follow", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("follow not found", http.StatusNotFound, w, fmt.Errorf("no follow to remove"))
		return
	}

	if err := f.DB.DeleteOne(ctx, bson.M{"followerId": followerID, "followingId": tID}); err != nil {
		config.ErrorStatus("failed to unfollow user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "User unfollowed"})
}

// FollowersHandler lists the users following the target user
func (f Follow) FollowersHandler(w http.ResponseWriter, r *http.Request) {
	f.listFollowEdges(w, r, "followingId", "followerId")
}

// FollowingHandler lists the users the target user follows
func (f Follow) FollowingHandler(w http.ResponseWriter, r *http.Request) {
	f.listFollowEdges(w, r, "followerId", "followingId")
}

// listFollowEdges resolves one side of the follow edge to user documents.
// matchField selects the edges, pickField names the side to hydrate.
func (f Follow) listFollowEdges(w http.ResponseWriter, r *http.Request, matchField, pickField string) {
	w.Header().Set("Content-Type", "application/json")
	targetID := mux.Vars(r)["user_id"]

	tID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	edges, err := f.DB.Find(ctx, bson.M{matchField: tID})
	if err != nil {
		config.ErrorStatus("failed to get follows", http.StatusInternalServerError, w, err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		if pickField == "followerId" {
			ids = append(ids, edge.FollowerID)
		} else {
			ids = append(ids, edge.FollowingID)
		}
	}

	users := []models.User{}
	if len(ids) > 0 {
		users, err = f.UDB.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
			return
		}
	}

	b, err := json.Marshal(users)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
