package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// RecommendationService owns the one-per-user satisfaction rating.
type RecommendationService struct {
	recs   ports.RecommendationAPI
	logger zerolog.Logger
}

func NewRecommendationService(recs ports.RecommendationAPI, logger zerolog.Logger) *RecommendationService {
	return &RecommendationService{recs: recs, logger: logger}
}

// ForUser returns the user's existing rating, or nil when none was submitted
// yet.
func (s *RecommendationService) ForUser(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	rec, err := s.recs.ForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// Submit upserts the user's rating. The backend keeps one rating per user, so
// a resubmission replaces the previous value.
func (s *RecommendationService) Submit(ctx context.Context, userID int64, rating int) (*domain.Recommendation, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	if rating < 0 || rating > 10 {
		return nil, domain.ErrInvalidRating
	}
	rec, err := s.recs.Submit(ctx, userID, rating)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", userID).Int("rating", rating).Msg("recommendation submitted")
	return rec, nil
}

func (s *RecommendationService) Stats(ctx context.Context) (*domain.RecommendationStats, error) {
	return s.recs.Stats(ctx)
}

var _ ports.RecommendationService = (*RecommendationService)(nil)
