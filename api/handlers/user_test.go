package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lawconnect/lawconnect-api/api/handlers"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/databases/mocks"
	"github.com/lawconnect/lawconnect-api/models"
)

type MockDatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function.
func (_m *MockDatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if rf, ok := ret.Get(0).(func() databases.ClientHelper); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.ClientHelper)
		}
	}

	return r0
}

// Collection provides a mock function.
func (_m *MockDatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if rf, ok := ret.Get(0).(func(string) databases.CollectionHelper); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.CollectionHelper)
		}
	}

	return r0
}

func TestUser_SignupHandler_CreatesLawyerProfile(t *testing.T) {
	body := `{"email": "ada@example.com", "password": "hunter22", "fullName": "Ada Lovelace", "role": "lawyer"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	profilesConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	usersConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	profilesConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "users").Return(usersConn)
	db.On("Collection", "lawyerProfiles").Return(profilesConn)

	u := handlers.User{
		DB:  databases.NewUserDatabase(db),
		LDB: databases.NewLawyerProfileDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "User created successfully")
	profilesConn.AssertCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestUser_SignupHandler_ClientGetsNoProfile(t *testing.T) {
	body := `{"email": "bob@example.com", "password": "hunter22", "fullName": "Bob"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	profilesConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	usersConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "users").Return(usersConn)
	db.On("Collection", "lawyerProfiles").Return(profilesConn)

	u := handlers.User{
		DB:  databases.NewUserDatabase(db),
		LDB: databases.NewLawyerProfileDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	profilesConn.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestUser_SignupHandler_LowercasesEmail(t *testing.T) {
	body := `{"email": "  Ada@Example.COM  ", "password": "hunter22", "fullName": "Ada Lovelace"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	var lookupFilter bson.M
	var inserted models.User

	singleResultHelper.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	usersConn.On("FindOne", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		lookupFilter = args.Get(1).(bson.M)
	}).Return(singleResultHelper)
	usersConn.On("InsertOne", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(models.User)
	}).Return(nil, nil)
	db.On("Collection", "users").Return(usersConn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "ada@example.com", lookupFilter["email"])
	assert.Equal(t, "ada@example.com", inserted.Email)
}

func TestUser_SignupHandler_MissingFields(t *testing.T) {
	body := `{"email": "ada@example.com"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "email, password, and full name are required")
}

func TestUser_SignupHandler_InvalidRole(t *testing.T) {
	body := `{"email": "ada@example.com", "password": "hunter22", "fullName": "Ada", "role": "judge"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid role")
}

func TestUser_SignupHandler_DuplicateEmail(t *testing.T) {
	body := `{"email": "ada@example.com", "password": "hunter22", "fullName": "Ada"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	// Decode succeeds, so the email is already taken
	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "users").Return(usersConn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "email already exists")
}

func TestUser_UserHandler_BadID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/users/asdf", nil)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get objectID from Hex")
}
