package models

// HealthCheckResponse is the /health payload
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
