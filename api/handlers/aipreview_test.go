package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lawconnect/lawconnect-api/api/handlers"
	"github.com/lawconnect/lawconnect-api/gemini"
)

func TestAIPreview_PreviewHandler(t *testing.T) {
	body := `{"question": "Can my employer fire me without notice?"}`
	req, err := http.NewRequest("POST", "/api/v1/ai/preview", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	ai := &fakeAI{answer: "In most at-will states, yes, with exceptions."}
	p := handlers.AIPreview{AI: ai}

	rr := httptest.NewRecorder()
	http.HandlerFunc(p.PreviewHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "In most at-will states")
	assert.Equal(t, 1, ai.answerCalls)
}

func TestAIPreview_PreviewHandler_TooShort(t *testing.T) {
	body := `{"question": "help"}`
	req, err := http.NewRequest("POST", "/api/v1/ai/preview", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	ai := &fakeAI{answer: "should never be returned"}
	p := handlers.AIPreview{AI: ai}

	rr := httptest.NewRecorder()
	http.HandlerFunc(p.PreviewHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "question must be at least 10 characters")
	// the provider must not be invoked for rejected input
	assert.Equal(t, 0, ai.answerCalls)
}

func TestAIPreview_PreviewHandler_RawLengthGate(t *testing.T) {
	// the gate counts raw characters, padding included
	body := `{"question": "    hi    "}`
	req, err := http.NewRequest("POST", "/api/v1/ai/preview", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	ai := &fakeAI{answer: "Hard to say without more detail."}
	p := handlers.AIPreview{AI: ai}

	rr := httptest.NewRecorder()
	http.HandlerFunc(p.PreviewHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, ai.answerCalls)
}

func TestAIPreview_PreviewHandler_ProviderFailure(t *testing.T) {
	body := `{"question": "Can my employer fire me without notice?"}`
	req, err := http.NewRequest("POST", "/api/v1/ai/preview", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	ai := &fakeAI{answerErr: gemini.ErrGenerationFailed}
	p := handlers.AIPreview{AI: ai}

	rr := httptest.NewRecorder()
	http.HandlerFunc(p.PreviewHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to generate answer")
}
