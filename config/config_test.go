package config

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing db uri",
			config:  Config{DatabaseName: "lawconnect", GeminiAPIKey: "key"},
			wantErr: "DB_URI is not set",
		},
		{
			name:    "missing db name",
			config:  Config{URL: "mongodb://localhost:27017", GeminiAPIKey: "key"},
			wantErr: "DB_NAME is not set",
		},
		{
			name:    "missing gemini key",
			config:  Config{URL: "mongodb://localhost:27017", DatabaseName: "lawconnect"},
			wantErr: "GEMINI_API_KEY is not set",
		},
		{
			name:   "complete",
			config: Config{URL: "mongodb://localhost:27017", DatabaseName: "lawconnect", GeminiAPIKey: "key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "lawconnect")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("PORT", "9090")

	c := New()

	assert.Equal(t, "mongodb://localhost:27017", c.URL)
	assert.Equal(t, "lawconnect", c.DatabaseName)
	assert.Equal(t, "key", c.GeminiAPIKey)
	assert.Equal(t, "9090", c.Port)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("failed to get user by ID", 404, rr, assert.AnError)

	assert.Equal(t, 404, rr.Code)
	assert.Contains(t, rr.Body.String(), `"response": "failed to get user by ID,`)
}
