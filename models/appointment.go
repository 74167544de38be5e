package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Appointment statuses and the transitions the status endpoint allows:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment holds the structure for the appointments collection in mongo
type Appointment struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	ClientID        primitive.ObjectID `json:"clientId" bson:"clientId"`
	LawyerID        primitive.ObjectID `json:"lawyerId" bson:"lawyerId"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	ScheduledDate   primitive.DateTime `json:"scheduledDate" bson:"scheduledDate"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`
	Status          string             `json:"status" bson:"status"`
	MeetingLink     string             `json:"meetingLink" bson:"meetingLink"`
	Notes           string             `json:"notes" bson:"notes"`
	CreatedAt       primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt       primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// AllowedAppointmentTransition reports whether an appointment may move
// from one status to another.
func AllowedAppointmentTransition(from, to string) bool {
	switch from {
	case AppointmentStatusPending:
		return to == AppointmentStatusConfirmed || to == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return to == AppointmentStatusCompleted || to == AppointmentStatusCancelled
	}
	return false
}
