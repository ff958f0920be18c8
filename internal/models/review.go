package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaxImages        = 5
	MaxContentLength = 2000
	MinRating        = 0.5
	MaxRating        = 5.0

	DefaultRecentLimit = 20
	MaxRecentLimit     = 100

	StatusActive = "active"
)

// Review is a stored product review. It is never updated after insertion.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReviewID     string             `bson:"reviewId" json:"reviewId"`
	ProductID    string             `bson:"productId" json:"productId"`
	UserID       *string            `bson:"userId" json:"userId"`
	UserName     string             `bson:"userName" json:"userName"`
	Rating       float64            `bson:"rating" json:"rating"`
	Content      string             `bson:"content" json:"content"`
	Images       []string           `bson:"images" json:"images"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	Helpful      int                `bson:"helpful" json:"helpful"`
	HelpfulUsers []string           `bson:"helpfulUsers" json:"helpfulUsers"`
	Status       string             `bson:"status" json:"status"`
}

// CreateReviewRequest is the JSON body of POST /api/reviews.
type CreateReviewRequest struct {
	ProductID string   `json:"productId"`
	Rating    *float64 `json:"rating"`
	UserName  string   `json:"userName"`
	Content   *string  `json:"content"`
	Images    []string `json:"images"`
}
