package handlers_test

import (
	"net/http"
	"net/http/httptest"
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

func TestFollow_FollowUserHandler_SelfFollow(t *testing.T) {
	uID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/users/"+uID.Hex()+"/follow", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": uID.Hex()})
	req = api.WithSessionUser(req, uID.Hex())

	f := handlers.Follow{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.FollowUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "cannot follow yourself")
}

func TestFollow_FollowUserHandler_Duplicate(t *testing.T) {
	target := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/users/"+target.Hex()+"/follow", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": target.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	followsConn := &mocks.CollectionHelper{}
	usersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	followsConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "users").Return(usersConn)
	db.On("Collection", "follows").Return(followsConn)

	f := handlers.Follow{
		DB:  databases.NewFollowDatabase(db),
		UDB: databases.NewUserDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.FollowUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already following this user")
	followsConn.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestFollow_FollowUserHandler_Creates(t *testing.T) {
	target := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/users/"+target.Hex()+"/follow", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": target.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	followsConn := &mocks.CollectionHelper{}
	usersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	followsConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	followsConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "users").Return(usersConn)
	db.On("Collection", "follows").Return(followsConn)

	f := handlers.Follow{
		DB:  databases.NewFollowDatabase(db),
		UDB: databases.NewUserDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.FollowUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "User followed")
}

func TestFollow_UnfollowUserHandler_NotFound(t *testing.T) {
	target := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/v1/users/"+target.Hex()+"/follow", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": target.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	followsConn := &mocks.CollectionHelper{}

	followsConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("Collection", "follows").Return(followsConn)

	f := handlers.Follow{DB: databases.NewFollowDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.UnfollowUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "follow not found")
	followsConn.AssertNotCalled(t, "DeleteOne", mock.Anything, mock.Anything)
}

func TestFollow_FollowersHandler_Empty(t *testing.T) {
	target := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/users/"+target.Hex()+"/followers", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": target.Hex()})

	db := &MockDatabaseHelper{}
	followsConn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	followsConn.On("Find", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "follows").Return(followsConn)

	f := handlers.Follow{DB: databases.NewFollowDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.FollowersHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
