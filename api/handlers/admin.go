package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/models"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"admin"`
}

type updateBlogStatusRequest struct {
	Status string `json:"status"`
}

type updateUserRoleRequest struct {
	Role string `json:"role"`
}

// Admin represents the admin handler
type Admin struct {
	UDB databases.UserDatabase
	BDB databases.BlogPostDatabase
	LDB databases.LawyerProfileDatabase
}

// LoginHandler authenticates an admin-role user and returns a 24h JWT
func (h Admin) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email and password required"})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	admin, err := h.UDB.FindOne(ctx, bson.M{"email": email, "role": models.RoleAdmin})
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   admin.ID.Hex(),
		"email": admin.Email,
		"scope": "admin",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	var resp adminLoginResponse
	resp.Token = signed
	resp.Admin.ID = admin.ID.Hex()
	resp.Admin.Email = admin.Email

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// UpdateBlogStatusHandler moves a blog post to published or rejected.
// Publishing stamps publishedAt.
func (h Admin) UpdateBlogStatusHandler(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	pID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req updateBlogStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Status != models.BlogStatusPublished && req.Status != models.BlogStatusRejected {
		config.ErrorStatus("status must be published or rejected", http.StatusBadRequest, w, fmt.Errorf("got %q", req.Status))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := h.BDB.FindOne(ctx, bson.M{"_id": pID}); err != nil {
		config.ErrorStatus("failed to get blog post by ID", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	set := bson.M{
		"status":    req.Status,
		"updatedAt": now,
	}
	if req.Status == models.BlogStatusPublished {
		set["publishedAt"] = now
	}

	if err := h.BDB.UpdateOne(ctx, bson.M{"_id": pID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update blog post", http.StatusInternalServerError, w, err)
		return
	}

	post, err := h.BDB.FindOne(ctx, bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get blog post by ID", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(post)
}

// VerifyLawyerHandler marks a lawyer profile as verified so it shows up in
// the marketplace
func (h Admin) VerifyLawyerHandler(w http.ResponseWriter, r *http.Request) {
	lawyerID := mux.Vars(r)["lawyer_id"]

	lID, err := primitive.ObjectIDFromHex(lawyerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := h.LDB.FindOne(ctx, bson.M{"_id": lID}); err != nil {
		config.ErrorStatus("failed to get lawyer by ID", http.StatusNotFound, w, err)
		return
	}

	if err := h.LDB.UpdateOne(ctx, bson.M{"_id": lID}, bson.M{"$set": bson.M{
		"verified":  true,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}); err != nil {
		config.ErrorStatus("failed to verify lawyer", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Lawyer verified"})
}

// UpdateUserRoleHandler changes a user's role. Promoting a user to lawyer
// creates an empty profile if one does not exist yet.
func (h Admin) UpdateUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req updateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidRole(req.Role) {
		config.ErrorStatus("invalid role", http.StatusBadRequest, w, fmt.Errorf("got %q", req.Role))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := h.UDB.FindOne(ctx, bson.M{"_id": uID}); err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	if err := h.UDB.UpdateOne(ctx, bson.M{"_id": uID}, bson.M{"$set": bson.M{
		"role":      req.Role,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}); err != nil {
		config.ErrorStatus("failed to update user role", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("user role changed", "userId", uID.Hex(), "role", req.Role, "admin", api.AdminClaims(r)["sub"])

	if req.Role == models.RoleLawyer {
		if _, err := h.LDB.FindOne(ctx, bson.M{"userId": uID}); err != nil {
			now := primitive.NewDateTimeFromTime(time.Now())
			profile := models.LawyerProfile{
				ID:              primitive.NewObjectID(),
				UserID:          uID,
				Specialization:  []string{},
				ExperienceYears: 0,
				Verified:        false,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := h.LDB.InsertOne(ctx, profile); err != nil {
				config.ErrorStatus("failed to create lawyer profile", http.StatusInternalServerError, w, err)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "User role updated"})
}
