package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"review-app/internal/models"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the index that backs ListRecent.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("%w: create index: %v", models.ErrPersistence, err)
	}
	return nil
}

// Save inserts a copy of review with identity and timestamps assigned and returns the stored form.
func (r *ReviewRepository) Save(ctx context.Context, review *models.Review) (*models.Review, error) {
	stored := prepareForInsert(review, time.Now())

	if _, err := r.collection.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("%w: insert review: %v", models.ErrPersistence, err)
	}

	return stored, nil
}

// ListRecent returns up to limit reviews, newest first.
func (r *ReviewRepository) ListRecent(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = models.DefaultRecentLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find reviews: %v", models.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("%w: decode reviews: %v", models.ErrPersistence, err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}

// prepareForInsert stamps identity, timestamps and the default bookkeeping fields.
// Timestamps are truncated to milliseconds, the precision MongoDB stores.
func prepareForInsert(review *models.Review, now time.Time) *models.Review {
	stored := *review
	now = now.UTC().Truncate(time.Millisecond)

	stored.ID = primitive.NewObjectID()
	stored.ReviewID = uuid.NewString()
	stored.UserID = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Helpful = 0
	stored.HelpfulUsers = []string{}
	stored.Status = models.StatusActive

	stored.Images = make([]string, len(review.Images))
	copy(stored.Images, review.Images)

	return &stored
}
