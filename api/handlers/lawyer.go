package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawconnect/lawconnect-api/api"
	"github.com/lawconnect/lawconnect-api/config"
	"github.com/lawconnect/lawconnect-api/databases"
	"github.com/lawconnect/lawconnect-api/models"
)

// Lawyer exported for testing purposes
type Lawyer struct {
	DB  databases.LawyerProfileDatabase
	UDB databases.UserDatabase
}

type updateLawyerProfileRequest struct {
	Specialization  []string `json:"specialization"`
	ExperienceYears *int     `json:"experienceYears"`
	Education       *string  `json:"education"`
	LicenseNumber   *string  `json:"licenseNumber"`
	Bio             *string  `json:"bio"`
	HourlyRate      *float64 `json:"hourlyRate"`
	OfficeAddress   *string  `json:"officeAddress"`
	Phone           *string  `json:"phone"`
	Website         *string  `json:"website"`
}

// LawyersHandler lists verified lawyers for the marketplace with optional
// specialization filtering and sorting
func (l Lawyer) LawyersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	page := getPage(r)

	filter := bson.M{"verified": true}
	if spec := r.URL.Query().Get("specialization"); spec != "" && spec != "all" {
		specs := strings.Split(spec, ",")
		filter["specialization"] = bson.M{"$in": specs}
	}

	var sort bson.D
	switch r.URL.Query().Get("sort") {
	case "experience":
		sort = bson.D{{Key: "experienceYears", Value: -1}}
	case "priceLow":
		sort = bson.D{{Key: "hourlyRate", Value: 1}}
	case "priceHigh":
		sort = bson.D{{Key: "hourlyRate", Value: -1}}
	default:
		sort = bson.D{{Key: "averageRating", Value: -1}}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	profiles, err := l.DB.FindPage(ctx, filter, sort, pageSize, page)
	if err != nil {
		config.ErrorStatus("failed to get lawyers", http.StatusInternalServerError, w, err)
		return
	}

	lawyers := make([]models.LawyerProfileWithUser, 0, len(profiles))
	for _, profile := range profiles {
		joined := models.LawyerProfileWithUser{LawyerProfile: profile}
		if user, err := l.UDB.FindOne(ctx, bson.M{"_id": profile.UserID}); err == nil {
			joined.User = user
		}
		lawyers = append(lawyers, joined)
	}

	totalCount, err := l.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count lawyers", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.LawyerListResponse{
		Lawyers:     lawyers,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(pageSize))),
		CurrentPage: page,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LawyerByIDHandler returns a single lawyer profile joined with its user
func (l Lawyer) LawyerByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	lawyerID := mux.Vars(r)["lawyer_id"]

	lID, err := primitive.ObjectIDFromHex(lawyerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	profile, err := l.DB.FindOne(ctx, bson.M{"_id": lID})
	if err != nil {
		config.ErrorStatus("failed to get lawyer by ID", http.StatusNotFound, w, err)
		return
	}

	joined := models.LawyerProfileWithUser{LawyerProfile: *profile}
	if user, err := l.UDB.FindOne(ctx, bson.M{"_id": profile.UserID}); err == nil {
		joined.User = user
	}

	b, err := json.Marshal(joined)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateLawyerProfileHandler lets a lawyer edit their own profile. The
// verified flag and rating aggregates are never writable here.
func (l Lawyer) UpdateLawyerProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(api.SessionUserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	var req updateLawyerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := l.DB.FindOne(ctx, bson.M{"userId": userID}); err != nil {
		config.ErrorStatus("lawyer profile not found", http.StatusNotFound, w, err)
		return
	}

	set := bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if req.Specialization != nil {
		set["specialization"] = req.Specialization
	}
	if req.ExperienceYears != nil {
		if *req.ExperienceYears < 0 {
			config.ErrorStatus("experienceYears cannot be negative", http.StatusBadRequest, w, fmt.Errorf("got %d", *req.ExperienceYears))
			return
		}
		set["experienceYears"] = *req.ExperienceYears
	}
	if req.Education != nil {
		set["education"] = *req.Education
	}
	if req.LicenseNumber != nil {
		set["licenseNumber"] = *req.LicenseNumber
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			config.ErrorStatus("hourlyRate cannot be negative", http.StatusBadRequest, w, fmt.Errorf("got %f", *req.HourlyRate))
			return
		}
		set["hourlyRate"] = *req.HourlyRate
	}
	if req.OfficeAddress != nil {
		set["officeAddress"] = *req.OfficeAddress
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}

	if err := l.DB.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update lawyer profile", http.StatusInternalServerError, w, err)
		return
	}

	profile, err := l.DB.FindOne(ctx, bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get lawyer profile", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(profile)
}
