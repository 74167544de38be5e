package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/api/handlers"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/databases/mocks"
	"github.com/lawconnect/lawconnect-api/models"
)

func TestAnswer_CreateAnswerHandler_ClosedQuestion(t *testing.T) {
	qID := primitive.NewObjectID()
	body := `{"content": "You should consult the statute of limitations."}`
	req, err := http.NewRequest("POST", "/api/v1/questions/"+qID.Hex()+"/answers", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"question_id": qID.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	questionsConn := &mocks.CollectionHelper{}
	answersConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Question)
		(*arg).ID = qID
		(*arg).Status = models.QuestionStatusClosed
	})
	questionsConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "questions").Return(questionsConn)
	db.On("Collection", "answers").Return(answersConn)

	a := handlers.Answer{
		DB:  databases.NewAnswerDatabase(db),
		QDB: databases.NewQuestionDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CreateAnswerHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "question is closed")
	answersConn.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAnswer_CreateAnswerHandler_EmptyContent(t *testing.T) {
	qID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/questions/"+qID.Hex()+"/answers", strings.NewReader(`{"content": ""}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"question_id": qID.Hex()})

	a := handlers.Answer{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CreateAnswerHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "content is required")
}

func TestAnswer_MarkBestAnswerHandler_NotOwner(t *testing.T) {
	aID := primitive.NewObjectID()
	qID := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	req, err := http.NewRequest("PUT", "/api/v1/answers/"+aID.Hex()+"/best", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"answer_id": aID.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex()) // not the owner

	db := &MockDatabaseHelper{}
	answersConn := &mocks.CollectionHelper{}
	questionsConn := &mocks.CollectionHelper{}
	answerResult := &mocks.SingleResultHelper{}
	questionResult := &mocks.SingleResultHelper{}

	answerResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Answer)
		(*arg).ID = aID
		(*arg).QuestionID = qID
	})
	questionResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Question)
		(*arg).ID = qID
		(*arg).UserID = owner
	})
	answersConn.On("FindOne", mock.Anything, mock.Anything).Return(answerResult)
	questionsConn.On("FindOne", mock.Anything, mock.Anything).Return(questionResult)
	db.On("Collection", "answers").Return(answersConn)
	db.On("Collection", "questions").Return(questionsConn)

	a := handlers.Answer{
		DB:  databases.NewAnswerDatabase(db),
		QDB: databases.NewQuestionDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.MarkBestAnswerHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "only the question owner")
	answersConn.AssertNotCalled(t, "UpdateMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswer_MarkBestAnswerHandler(t *testing.T) {
	aID := primitive.NewObjectID()
	qID := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	req, err := http.NewRequest("PUT", "/api/v1/answers/"+aID.Hex()+"/best", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"answer_id": aID.Hex()})
	req = api.WithSessionUser(req, owner.Hex())

	db := &MockDatabaseHelper{}
	answersConn := &mocks.CollectionHelper{}
	questionsConn := &mocks.CollectionHelper{}
	answerResult := &mocks.SingleResultHelper{}
	questionResult := &mocks.SingleResultHelper{}

	answerResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Answer)
		(*arg).ID = aID
		(*arg).QuestionID = qID
	})
	questionResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Question)
		(*arg).ID = qID
		(*arg).UserID = owner
		(*arg).Status = models.QuestionStatusOpen
	})
	answersConn.On("FindOne", mock.Anything, mock.Anything).Return(answerResult)
	answersConn.On("UpdateMany", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	answersConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	questionsConn.On("FindOne", mock.Anything, mock.Anything).Return(questionResult)
	questionsConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "answers").Return(answersConn)
	db.On("Collection", "questions").Return(questionsConn)

	a := handlers.Answer{
		DB:  databases.NewAnswerDatabase(db),
		QDB: databases.NewQuestionDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.MarkBestAnswerHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Best answer marked")
	// previous best is cleared before the new one is set
	answersConn.AssertCalled(t, "UpdateMany", mock.Anything, mock.Anything, mock.Anything)
	// question moves to answered
	questionsConn.AssertCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswer_LikeAnswerHandler_Duplicate(t *testing.T) {
	aID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/answers/"+aID.Hex()+"/like", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"answer_id": aID.Hex()})
	req = api.WithSessionUser(req, primitive.NewObjectID().Hex())

	db := &MockDatabaseHelper{}
	answersConn := &mocks.CollectionHelper{}
	likesConn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	answersConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	likesConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "answers").Return(answersConn)
	db.On("Collection", "answerLikes").Return(likesConn)

	a := handlers.Answer{
		DB:   databases.NewAnswerDatabase(db),
		ALDB: databases.NewAnswerLikeDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LikeAnswerHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "answer already liked")
}
