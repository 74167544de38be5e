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
	"golang.org/x/crypto/bcrypt"

	"github.com/lawconnect/lawconnect-api/api/handlers"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/databases/mocks"
	"github.com/lawconnect/lawconnect-api/models"
)

func TestAdmin_LoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	adminID := primitive.NewObjectID()
	body := `{"email": "admin@lawconnect.app", "password": "correct-horse"}`
	req, err := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(body))
	require.NoError(t, err)

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = adminID
		(*arg).Email = "admin@lawconnect.app"
		(*arg).Password = string(hash)
		(*arg).Role = models.RoleAdmin
	})
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "users").Return(usersConn)

	a := handlers.Admin{UDB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"token"`)
	assert.Contains(t, rr.Body.String(), adminID.Hex())
}

func TestAdmin_LoginHandler_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	body := `{"email": "admin@lawconnect.app", "password": "battery-staple"}`
	req, err := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(body))
	require.NoError(t, err)

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).Password = string(hash)
		(*arg).Role = models.RoleAdmin
	})
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "users").Return(usersConn)

	a := handlers.Admin{UDB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
}

func TestAdmin_UpdateBlogStatusHandler_InvalidStatus(t *testing.T) {
	pID := primitive.NewObjectID()
	body := `{"status": "draft"}`
	req, err := http.NewRequest("PUT", "/api/v1/admin/blog/"+pID.Hex()+"/status", strings.NewReader(body))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"post_id": pID.Hex()})

	a := handlers.Admin{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.UpdateBlogStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "status must be published or rejected")
}

func TestAdmin_UpdateBlogStatusHandler_Publish(t *testing.T) {
	pID := primitive.NewObjectID()
	body := `{"status": "published"}`
	req, err := http.NewRequest("PUT", "/api/v1/admin/blog/"+pID.Hex()+"/status", strings.NewReader(body))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"post_id": pID.Hex()})

	db := &MockDatabaseHelper{}
	blogConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.BlogPost)
		(*arg).ID = pID
		(*arg).Status = models.BlogStatusDraft
	})
	blogConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	blogConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "blogPosts").Return(blogConn)

	a := handlers.Admin{BDB: databases.NewBlogPostDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.UpdateBlogStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	blogConn.AssertCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdmin_VerifyLawyerHandler(t *testing.T) {
	lID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/v1/admin/lawyers/"+lID.Hex()+"/verify", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"lawyer_id": lID.Hex()})

	db := &MockDatabaseHelper{}
	profilesConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	profilesConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	profilesConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "lawyerProfiles").Return(profilesConn)

	a := handlers.Admin{LDB: databases.NewLawyerProfileDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.VerifyLawyerHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lawyer verified")
}

func TestAdmin_UpdateUserRoleHandler_InvalidRole(t *testing.T) {
	uID := primitive.NewObjectID()
	body := `{"role": "superuser"}`
	req, err := http.NewRequest("PUT", "/api/v1/admin/users/"+uID.Hex()+"/role", strings.NewReader(body))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": uID.Hex()})

	a := handlers.Admin{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.UpdateUserRoleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid role")
}

func TestAdmin_UpdateUserRoleHandler_PromoteToLawyerCreatesProfile(t *testing.T) {
	uID := primitive.NewObjectID()
	body := `{"role": "lawyer"}`
	req, err := http.NewRequest("PUT", "/api/v1/admin/users/"+uID.Hex()+"/role", strings.NewReader(body))
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": uID.Hex()})

	db := &MockDatabaseHelper{}
	usersConn := &mocks.CollectionHelper{}
	profilesConn := &mocks.CollectionHelper{}
	userResult := &mocks.SingleResultHelper{}
	profileResult := &mocks.SingleResultHelper{}

	userResult.On("Decode", mock.Anything).Return(nil)
	profileResult.On("Decode", mock.Anything).Return(assert.AnError) // no profile yet
	usersConn.On("FindOne", mock.Anything, mock.Anything).Return(userResult)
	usersConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	profilesConn.On("FindOne", mock.Anything, mock.Anything).Return(profileResult)
	profilesConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "users").Return(usersConn)
	db.On("Collection", "lawyerProfiles").Return(profilesConn)

	a := handlers.Admin{
		UDB: databases.NewUserDatabase(db),
		LDB: databases.NewLawyerProfileDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.UpdateUserRoleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	profilesConn.AssertCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
