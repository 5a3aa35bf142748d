package backend

import (
	"context"
	"fmt"

	"github.com/fixer-market/fixer-web/internal/core/domain"
)

// RecommendationsAPI wraps the /api/recommendations routes.
type RecommendationsAPI struct {
	c *Client
}

// Recommendations returns the recommendations resource API.
func (c *Client) Recommendations() *RecommendationsAPI {
	return &RecommendationsAPI{c: c}
}

// ForUser fetches the user's existing rating, if any.
func (r *RecommendationsAPI) ForUser(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	var out domain.Recommendation
	resp, err := r.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/recommendations/user/%d", userID))
	if cerr := r.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Submit upserts the user's rating; the backend keeps one per user.
func (r *RecommendationsAPI) Submit(ctx context.Context, userID int64, rating int) (*domain.Recommendation, error) {
	var out domain.Recommendation
	resp, err := r.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]int{"rating": rating}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/recommendations/user/%d", userID))
	if cerr := r.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Stats fetches the aggregate rating view.
func (r *RecommendationsAPI) Stats(ctx context.Context) (*domain.RecommendationStats, error) {
	var out domain.RecommendationStats
	resp, err := r.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/recommendations/stats")
	if cerr := r.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}
