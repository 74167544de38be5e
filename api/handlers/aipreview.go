package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/gemini"
)

// minPreviewQuestionLen guards the AI provider from junk prompts
const minPreviewQuestionLen = 10

// AIPreview exported for testing purposes
type AIPreview struct {
	AI gemini.Client
}

type previewRequest struct {
	Question string `json:"question"`
}

// PreviewHandler returns a one-off AI draft for a question without storing
// anything. Questions under ten characters are rejected before the provider
// is ever called.
func (p AIPreview) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if len(req.Question) < minPreviewQuestionLen {
		config.ErrorStatus("question must be at least 10 characters", http.StatusBadRequest, w, fmt.Errorf("question too short"))
		return
	}

	answer, err := p.AI.GenerateAnswer(r.Context(), req.Question)
	if err != nil {
		config.ErrorStatus("failed to generate answer", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"response": answer})
}
