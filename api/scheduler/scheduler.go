package scheduler

import (
	"context"
	"math"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawconnect/lawconnect-api/databases"
)

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron *cron.Cron
	RDB  databases.RatingDatabase
	LDB  databases.LawyerProfileDatabase
}

type lawyerRatingAggregate struct {
	LawyerID primitive.ObjectID `bson:"_id"`
	Average  float64            `bson:"average"`
	Count    int64              `bson:"count"`
}

// NewScheduler creates a new scheduler instance
func NewScheduler(rDB databases.RatingDatabase, lDB databases.LawyerProfileDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		RDB:  rDB,
		LDB:  lDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Reconcile lawyer rating aggregates nightly at 3 AM UTC. The rating
	// handler keeps them current synchronously; this heals any drift from
	// partial failures.
	_, err := s.cron.AddFunc("0 3 * * *", s.reconcileLawyerRatings)
	if err != nil {
		zap.S().Errorw("failed to register rating reconciliation job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Rating reconciliation scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Rating reconciliation scheduler stopped")
}

// reconcileLawyerRatings recomputes averageRating and totalReviews for every
// lawyer straight from the ratings collection
func (s *Scheduler) reconcileLawyerRatings() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	zap.S().Info("Running lawyer rating reconciliation job")

	var aggregates []lawyerRatingAggregate
	err := s.RDB.Aggregate(ctx, []bson.D{
		{{Key: "$group", Value: bson.M{
			"_id":     "$lawyerId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}, &aggregates)
	if err != nil {
		zap.S().Errorw("failed to aggregate ratings", "error", err)
		return
	}

	rated := make(map[primitive.ObjectID]bool, len(aggregates))
	updated := 0
	for _, agg := range aggregates {
		rated[agg.LawyerID] = true
		err := s.LDB.UpdateOne(ctx, bson.M{"_id": agg.LawyerID}, bson.M{"$set": bson.M{
			"averageRating": math.Round(agg.Average*10) / 10,
			"totalReviews":  agg.Count,
		}})
		if err != nil {
			zap.S().Errorw("failed to update lawyer aggregates", "error", err, "lawyerId", agg.LawyerID.Hex())
			continue
		}
		updated++
	}

	// Zero out profiles whose last rating was deleted
	profiles, err := s.LDB.Find(ctx, bson.M{"totalReviews": bson.M{"$gt": 0}})
	if err != nil {
		zap.S().Errorw("failed to list rated profiles", "error", err)
		return
	}
	for _, profile := range profiles {
		if rated[profile.ID] {
			continue
		}
		err := s.LDB.UpdateOne(ctx, bson.M{"_id": profile.ID}, bson.M{"$set": bson.M{
			"averageRating": 0.0,
			"totalReviews":  int64(0),
		}})
		if err != nil {
			zap.S().Errorw("failed to reset lawyer aggregates", "error", err, "lawyerId", profile.ID.Hex())
			continue
		}
		updated++
	}

	zap.S().Infow("Lawyer rating reconciliation complete", "updated", updated)
}
