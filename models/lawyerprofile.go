package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LawyerProfile holds the structure for the lawyerProfiles collection in
// mongo. One profile per user with the lawyer role. Verified gates
// visibility in the marketplace listing.
type LawyerProfile struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	Specialization  []string           `json:"specialization" bson:"specialization"`
	ExperienceYears int                `json:"experienceYears" bson:"experienceYears"`
	Education       string             `json:"education" bson:"education"`
	LicenseNumber   string             `json:"licenseNumber" bson:"licenseNumber"`
	Bio             string             `json:"bio" bson:"bio"`
	HourlyRate      float64            `json:"hourlyRate" bson:"hourlyRate"`
	OfficeAddress   string             `json:"officeAddress" bson:"officeAddress"`
	Phone           string             `json:"phone" bson:"phone"`
	Website         string             `json:"website" bson:"website"`
	Verified        bool               `json:"verified" bson:"verified"`
	AverageRating   float64            `json:"averageRating" bson:"averageRating"`
	TotalReviews    int64              `json:"totalReviews" bson:"totalReviews"`
	CreatedAt       primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt       primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// LawyerProfileWithUser is a profile joined with its user account.
type LawyerProfileWithUser struct {
	LawyerProfile `bson:",inline"`
	User          *User `json:"user,omitempty" bson:"user,omitempty"`
}

// LawyerListResponse is the paginated marketplace payload.
type LawyerListResponse struct {
	Lawyers     []LawyerProfileWithUser `json:"lawyers"`
	TotalPages  int                     `json:"totalPages"`
	CurrentPage int                     `json:"currentPage"`
}
