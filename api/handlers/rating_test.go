package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/api/handlers"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/databases/mocks"
)

func TestRating_CreateRatingHandler_OutOfRange(t *testing.T) {
	lID := primitive.NewObjectID()
	for _, body := range []string{`{"rating": 0}`, `{"rating": 6}`, `{"rating": -1}`} {
		req, err := http.NewRequest("POST", "/api/v1/lawyers/"+lID.Hex()+"/ratings", strings.NewReader(body))
		require.NoError(t, err)
		req = mux.SetURLVars(req, map[string]string{"lawyer_id": lID.Hex()})
		req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

		rt := handlers.Rating{}

		rr := httptest.NewRecorder()
		http.HandlerFunc(rt.CreateRatingHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %s", body)
		assert.Contains(t, rr.Body.String(), "rating must be between 1 and 5")
	}
}

func TestRating_CreateRatingHandler_RecomputesAggregates(t *testing.T) {
	lID := primitive.NewObjectID()
	body := `{"rating": 4, "comment": "Very thorough."}`
	req, err := http.NewRequest("POST", "/api/v1/lawyers/"+lID.Hex()+"/ratings", strings.NewReader(body))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"lawyer_id": lID.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	ratingsConn := &mocks.CollectionHelper{}
	profilesConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}
	aggregateCursor := &mocks.CursorHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	aggregateCursor.On("Decode", mock.Anything).Return(nil)
	profilesConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	profilesConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	ratingsConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	ratingsConn.On("Aggregate", mock.Anything, mock.Anything).Return(aggregateCursor, nil)
	db.On("Collection", "ratings").Return(ratingsConn)
	db.On("Collection", "lawyerProfiles").Return(profilesConn)

	rt := handlers.Rating{
		DB:  databases.NewRatingDatabase(db),
		LDB: databases.NewLawyerProfileDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rt.CreateRatingHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	// aggregates are recomputed from the ratings collection before responding
	ratingsConn.AssertCalled(t, "Aggregate", mock.Anything, mock.Anything)
	profilesConn.AssertCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestRating_CreateRatingHandler_LawyerNotFound(t *testing.T) {
	lID := primitive.NewObjectID()
	body := `{"rating": 4}`
	req, err := http.NewRequest("POST", "/api/v1/lawyers/"+lID.Hex()+"/ratings", strings.NewReader(body))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"lawyer_id": lID.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	profilesConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(assert.AnError)
	profilesConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "lawyerProfiles").Return(profilesConn)

	rt := handlers.Rating{LDB: databases.NewLawyerProfileDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rt.CreateRatingHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get lawyer by ID")
}
