package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gorilla/mux"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/models"
	templates "github.com/lawconnect/lawconnect-api/templates/html"
)

// User exported for testing purposes
type User struct {
	DB  databases.UserDatabase
	LDB databases.LawyerProfileDatabase
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// SignupHandler creates a user account. A lawyer signup also creates an
// empty, unverified lawyer profile. The welcome email is best-effort.
func (u User) SignupHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	// same normalization as admin login, so one account per address
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		config.ErrorStatus("email, password, and full name are required", http.StatusBadRequest, w, fmt.Errorf("missing required field"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleClient
	}
	if !models.ValidRole(req.Role) {
		config.ErrorStatus("invalid role", http.StatusBadRequest, w, fmt.Errorf("unknown role %q", req.Role))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// check if the user already exists
	existingUser, _ := u.DB.FindOne(ctx, bson.M{"email": req.Email})
	if existingUser != nil {
		config.ErrorStatus("email already exists", http.StatusConflict, w, fmt.Errorf("duplicate email"))
		return
	}

	// hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		FullName:  req.FullName,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.DB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("failed to insert user", http.StatusInternalServerError, w, err)
		return
	}

	// lawyers start with an empty, unverified profile
	if req.Role == models.RoleLawyer {
		profile := models.LawyerProfile{
			ID:              primitive.NewObjectID(),
			UserID:          user.ID,
			Specialization:  []string{},
			ExperienceYears: 0,
			Verified:        false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := u.LDB.InsertOne(ctx, profile); err != nil {
			config.ErrorStatus("failed to create lawyer profile", http.StatusInternalServerError, w, err)
			return
		}
	}

	go func() {
		subject, html, plain := templates.WelcomeEmail(user.FullName)
		if err := sendEmail(user.Email, user.FullName, subject, html, plain); err != nil {
			zap.S().Warnw("failed to send welcome email", "error", err, "email", user.Email)
		}
	}()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// UserHandler returns a user given a userID
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: %v", userID)

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := u.DB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CheckEmailHandler checks if an email exists using POST
func (u User) CheckEmailHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existingUser, _ := u.DB.FindOne(ctx, bson.M{"email": req.Email})
	if existingUser != nil {
		config.ErrorStatus("email already exists", http.StatusConflict, w, fmt.Errorf("duplicate email"))
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "email available"})
}
