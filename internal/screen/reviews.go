package screen

import (
	"context"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

const reviewsPageLimit = 50

type ReviewsAPI interface {
	ListReviews(ctx context.Context, filter apiclient.ReviewFilter) (*apiclient.Envelope[domain.ReviewPage], error)
	ApproveReview(ctx context.Context, id string) (*apiclient.Ack, error)
	RejectReview(ctx context.Context, id, reason string) (*apiclient.Ack, error)
	DeleteReview(ctx context.Context, id string) (*apiclient.Ack, error)
}

type ReviewRow struct {
	domain.Review
	State stats.ModerationState
}

type ReviewsView struct {
	Status  string
	Reviews []ReviewRow
	Summary stats.ReviewSummary
}

// Reviews is the moderation screen
type Reviews struct {
	env *Env
	api ReviewsAPI
}

func NewReviews(env *Env, api ReviewsAPI) *Reviews {
	return &Reviews{env: env, api: api}
}

func (s *Reviews) Load(ctx context.Context, status string) (ReviewsView, error) {
	view := ReviewsView{Status: statusKey(status)}
	page, err := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResAdminReviews, view.Status},
		func(ctx context.Context) (domain.ReviewPage, error) {
			return apiclient.Unwrap(s.api.ListReviews(ctx, apiclient.ReviewFilter{
				Status: stats.StatusParam(status),
				Page:   1,
				Limit:  reviewsPageLimit,
			}))
		})
	if err != nil {
		return view, err
	}
	view.Reviews = make([]ReviewRow, len(page.Reviews))
	for i, r := range page.Reviews {
		view.Reviews[i] = ReviewRow{Review: r, State: stats.ModerationStateOf(r)}
	}
	view.Summary = stats.SummarizeReviews(page.Reviews)
	return view, nil
}

func (s *Reviews) Approve(ctx context.Context, id string) error {
	return s.env.run(ctx, mutation{
		name:        "reviews.Approve",
		invalidates: reviewReads,
		success:     notify.Success("Review approved", "The review is now published"),
		fallback:    "Could not approve the review",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.ApproveReview(ctx, id))
	})
}

func (s *Reviews) Reject(ctx context.Context, id, reason string) error {
	return s.env.run(ctx, mutation{
		name:        "reviews.Reject",
		invalidates: reviewReads,
		success:     notify.Success("Review rejected", "The review was rejected"),
		fallback:    "Could not reject the review",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.RejectReview(ctx, id, reason))
	})
}

func (s *Reviews) Delete(ctx context.Context, id string) error {
	return s.env.run(ctx, mutation{
		name:        "reviews.Delete",
		invalidates: reviewReads,
		success:     notify.Success("Review deleted", "The review was removed"),
		fallback:    "Could not delete the review",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.DeleteReview(ctx, id))
	})
}
