package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"review-app/internal/models"
)

const (
	recentReviewsKey    = "reviews:recent"
	recentGenerationKey = "reviews:recent:gen"
)

// ReviewStore is the persistence contract shared by the Mongo repository and its cache.
type ReviewStore interface {
	Save(ctx context.Context, review *models.Review) (*models.Review, error)
	ListRecent(ctx context.Context, limit int) ([]models.Review, error)
}

// recentEntry is one cached ListRecent result, tagged with the generation it was read under.
type recentEntry struct {
	Generation int64           `json:"gen"`
	Reviews    []models.Review `json:"reviews"`
}

// CachedReviewRepository keeps ListRecent results in a Redis hash keyed by limit.
//
// Every Save bumps a generation counter. An entry is served only while its
// generation matches the counter, so a list read before a Save is never
// returned after it. If the bump fails the cache is bypassed until a later
// bump succeeds.
type CachedReviewRepository struct {
	store ReviewStore
	redis *redis.Client
	ttl   time.Duration

	unsynced atomic.Bool
}

func NewCachedReviewRepository(store ReviewStore, client *redis.Client, ttl time.Duration) *CachedReviewRepository {
	return &CachedReviewRepository{store: store, redis: client, ttl: ttl}
}

func (r *CachedReviewRepository) Save(ctx context.Context, review *models.Review) (*models.Review, error) {
	saved, err := r.store.Save(ctx, review)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx)
	return saved, nil
}

func (r *CachedReviewRepository) ListRecent(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = models.DefaultRecentLimit
	}

	if r.unsynced.Load() && !r.invalidate(ctx) {
		return r.store.ListRecent(ctx, limit)
	}

	gen, err := r.generation(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("recent reviews cache read failed")
		return r.store.ListRecent(ctx, limit)
	}

	field := strconv.Itoa(limit)
	if reviews, ok := r.lookup(ctx, field, gen); ok {
		return reviews, nil
	}

	reviews, err := r.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(recentEntry{Generation: gen, Reviews: reviews})
	if err != nil {
		return reviews, nil
	}

	pipe := r.redis.TxPipeline()
	pipe.HSet(ctx, recentReviewsKey, field, payload)
	pipe.Expire(ctx, recentReviewsKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Msg("recent reviews cache write failed")
	}

	return reviews, nil
}

// invalidate bumps the generation and drops the hash. It reports whether Redis accepted both.
func (r *CachedReviewRepository) invalidate(ctx context.Context) bool {
	pipe := r.redis.TxPipeline()
	pipe.Incr(ctx, recentGenerationKey)
	pipe.Del(ctx, recentReviewsKey)
	if _, err := pipe.Exec(ctx); err != nil {
		r.unsynced.Store(true)
		log.Warn().Err(err).Msg("failed to invalidate recent reviews cache, bypassing it")
		return false
	}

	r.unsynced.Store(false)
	return true
}

func (r *CachedReviewRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.redis.Get(ctx, recentGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *CachedReviewRepository) lookup(ctx context.Context, field string, gen int64) ([]models.Review, bool) {
	cached, err := r.redis.HGet(ctx, recentReviewsKey, field).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("recent reviews cache read failed")
		}
		return nil, false
	}

	var entry recentEntry
	if err := json.Unmarshal(cached, &entry); err != nil {
		log.Warn().Str("field", field).Msg("discarding unreadable recent reviews cache entry")
		return nil, false
	}
	if entry.Generation != gen || entry.Reviews == nil {
		return nil, false
	}

	return entry.Reviews, true
}
