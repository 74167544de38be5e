package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/models"
	templates "github.com/lawconnect/lawconnect-api/templates/html"
)

// Appointment exported for testing purposes
type Appointment struct {
	DB  databases.AppointmentDatabase
	UDB databases.UserDatabase
	LDB databases.LawyerProfileDatabase
}

type createAppointmentRequest struct {
	LawyerID        string `json:"lawyerId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ScheduledDate   string `json:"scheduledDate"`
	DurationMinutes int    `json:"durationMinutes"`
}

type updateAppointmentStatusRequest struct {
	Status      string `json:"status"`
	MeetingLink string `json:"meetingLink"`
	Notes       string `json:"notes"`
}

// CreateAppointmentHandler books a consultation with a lawyer. New
// appointments always start out pending.
func (ap Appointment) CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	clientID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	lID, err := primitive.ObjectIDFromHex(req.LawyerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if req.Title == "" {
		config.ErrorStatus("title is required", http.StatusBadRequest, w, fmt.Errorf("missing required field"))
		return
	}
	if req.DurationMinutes <= 0 {
		config.ErrorStatus("durationMinutes must be positive", http.StatusBadRequest, w, fmt.Errorf("got %d", req.DurationMinutes))
		return
	}
	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		config.ErrorStatus("scheduledDate must be RFC3339", http.StatusBadRequest, w, err)
		return
	}
	if scheduled.Before(time.Now()) {
		config.ErrorStatus("scheduledDate must be in the future", http.StatusBadRequest, w, fmt.Errorf("got %s", req.ScheduledDate))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := ap.LDB.FindOne(ctx, bson.M{"_id": lID}); err != nil {
		config.ErrorStatus("failed to get lawyer by ID", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	appointment := models.Appointment{
		ID:              primitive.NewObjectID(),
		ClientID:        clientID,
		LawyerID:        lID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledDate:   primitive.NewDateTimeFromTime(scheduled),
		DurationMinutes: req.DurationMinutes,
		Status:          models.AppointmentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := ap.DB.InsertOne(ctx, appointment); err != nil {
		config.ErrorStatus("failed to create appointment", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appointment)
}

// AppointmentsHandler lists the session user's appointments, both sides of
// the booking, soonest first
func (ap Appointment) AppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{"clientId": userID}
	// lawyers see bookings made against their profile
	if profile, err := ap.LDB.FindOne(ctx, bson.M{"userId": userID}); err == nil {
		filter = bson.M{"$or": []bson.M{
			{"clientId": userID},
			{"lawyerId": profile.ID},
		}}
	}

	appointments, err := ap.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get appointments", http.StatusInternalServerError, w, err)
		return
	}
	if len(appointments) == 0 {
		appointments = []models.Appointment{}
	}

	b, err := json.Marshal(appointments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateAppointmentStatusHandler moves an appointment through its lifecycle.
// Confirming an appointment sends a best-effort email to the client.
func (ap Appointment) UpdateAppointmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	aID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	var req updateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	appointment, err := ap.DB.FindOne(ctx, bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get appointment by ID", http.StatusNotFound, w, err)
		return
	}

	if !ap.isParticipant(ctx, appointment, userID) {
		config.ErrorStatus("not a participant of this appointment", http.StatusForbidden, w, fmt.Errorf("user %s", userID.Hex()))
		return
	}

	if !models.AllowedAppointmentTransition(appointment.Status, req.Status) {
		config.ErrorStatus("invalid status transition", http.StatusConflict, w, fmt.Errorf("%s -> %s", appointment.Status, req.Status))
		return
	}

	set := bson.M{
		"status":    req.Status,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}
	if req.MeetingLink != "" {
		set["meetingLink"] = req.MeetingLink
	}
	if req.Notes != "" {
		set["notes"] = req.Notes
	}
	if err := ap.DB.UpdateOne(ctx, bson.M{"_id": aID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update appointment", http.StatusInternalServerError, w, err)
		return
	}

	if req.Status == models.AppointmentStatusConfirmed {
		go ap.sendConfirmationEmail(*appointment)
	}

	appointment.Status = req.Status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(appointment)
}

// CreateCheckoutSessionHandler spins up a stripe checkout session priced at
// the lawyer's hourly rate prorated by the appointment duration
func (ap Appointment) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	aID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	appointment, err := ap.DB.FindOne(ctx, bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get appointment by ID", http.StatusNotFound, w, err)
		return
	}
	if appointment.ClientID != userID {
		config.ErrorStatus("only the booking client can pay", http.StatusForbidden, w, fmt.Errorf("user %s", userID.Hex()))
		return
	}

	profile, err := ap.LDB.FindOne(ctx, bson.M{"_id": appointment.LawyerID})
	if err != nil {
		config.ErrorStatus("failed to get lawyer by ID", http.StatusNotFound, w, err)
		return
	}

	amountCents := int64(profile.HourlyRate * float64(appointment.DurationMinutes) / 60.0 * 100)
	if amountCents <= 0 {
		config.ErrorStatus("lawyer has no billable rate", http.StatusConflict, w, fmt.Errorf("hourlyRate %f", profile.HourlyRate))
		return
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Legal consultation: %s", appointment.Title)),
					},
					UnitAmount: stripe.Int64(amountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(baseURL + "/api/v1/success"),
		CancelURL:         stripe.String(baseURL + "/api/v1/cancel"),
		ClientReferenceID: stripe.String(appointment.ID.Hex()),
	}

	s, err := session.New(params)
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"sessionId": s.ID, "url": s.URL})
}

// handleSuccessRedirect is the stripe success landing page
func (ap Appointment) handleSuccessRedirect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Payment successful"})
}

// handleCancelRedirect is the stripe cancel landing page
func (ap Appointment) handleCancelRedirect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Payment cancelled"})
}

func (ap Appointment) isParticipant(ctx context.Context, appointment *models.Appointment, userID primitive.ObjectID) bool {
	if appointment.ClientID == userID {
		return true
	}
	profile, err := ap.LDB.FindOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return false
	}
	return profile.ID == appointment.LawyerID
}

func (ap Appointment) sendConfirmationEmail(appointment models.Appointment) {
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()

	client, err := ap.UDB.FindOne(ctx, bson.M{"_id": appointment.ClientID})
	if err != nil {
		zap.S().Warnw("failed to load client for confirmation email", "error", err)
		return
	}

	lawyerName := "your lawyer"
	if profile, err := ap.LDB.FindOne(ctx, bson.M{"_id": appointment.LawyerID}); err == nil {
		if lawyerUser, err := ap.UDB.FindOne(ctx, bson.M{"_id": profile.UserID}); err == nil {
			lawyerName = lawyerUser.FullName
		}
	}

	subject, htmlContent, plainText := templates.AppointmentConfirmedEmail(
		client.FullName,
		lawyerName,
		appointment.ScheduledDate.Time().Format("Monday, January 2, 2006 at 3:04 PM MST"),
		appointment.DurationMinutes,
	)
	if err := sendEmail(client.Email, client.FullName, subject, htmlContent, plainText); err != nil {
		zap.S().Warnw("failed to send confirmation email", "error", err)
	}
}
