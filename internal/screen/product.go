package screen

import (
	"context"
	"errors"
	"fmt"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

const productReviewsLimit = 10

var ErrInvalidBooking = errors.New("invalid booking")

type ProductAPI interface {
	GetTool(ctx context.Context, id string) (*apiclient.Envelope[domain.Tool], error)
	ToolReviews(ctx context.Context, toolID string, filter apiclient.ToolReviewFilter) (*apiclient.Envelope[domain.ToolReviewPage], error)
	CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (*apiclient.Envelope[domain.Booking], error)
	CreateReview(ctx context.Context, req domain.CreateReviewRequest) (*apiclient.Envelope[domain.Review], error)
}

type ProductView struct {
	Tool    domain.Tool
	Reviews []domain.Review
	Rating  domain.ToolRating
	Periods []stats.RentalPeriod
	Quote   stats.RentalQuote
}

// Product is the tool detail screen
type Product struct {
	env *Env
	api ProductAPI
}

func NewProduct(env *Env, api ProductAPI) *Product {
	return &Product{env: env, api: api}
}

// Load reads the tool and its reviews and prices days x quantity. Without
// the tool there is nothing to show; failed reviews only empty that part.
func (s *Product) Load(ctx context.Context, id string, days, quantity int) (ProductView, error) {
	var view ProductView

	tool, err := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResTool, id},
		func(ctx context.Context) (domain.Tool, error) {
			return apiclient.Unwrap(s.api.GetTool(ctx, id))
		})
	if err != nil {
		return view, err
	}
	view.Tool = tool
	view.Periods = stats.RentalPeriods(tool.Price)
	if tool.TotalStock > 0 && quantity > tool.TotalStock {
		quantity = tool.TotalStock
	}
	view.Quote = stats.Quote(tool.Price, days, quantity)

	page, err := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResToolReviews, id},
		func(ctx context.Context) (domain.ToolReviewPage, error) {
			return apiclient.Unwrap(s.api.ToolReviews(ctx, id, apiclient.ToolReviewFilter{Page: 1, Limit: productReviewsLimit}))
		})
	if err != nil {
		return view, err
	}
	view.Reviews = page.Reviews
	view.Rating = page.Rating
	return view, nil
}

// Book reserves quantity units of a tool for days starting on start (yyyy-mm-dd)
func (s *Product) Book(ctx context.Context, toolID, start string, days, quantity int, notes string) (domain.Booking, error) {
	var booking domain.Booking
	err := s.env.run(ctx, mutation{
		name:        "product.Book",
		invalidates: bookingReads,
		success:     notify.Success("Booking created", "The tool is reserved for you"),
		fallback:    "Could not create the booking",
	}, func(ctx context.Context) (string, error) {
		if quantity < 1 {
			return "", fmt.Errorf("%w: quantity must be at least 1", ErrInvalidBooking)
		}
		end, err := stats.EndDateFor(start, days)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidBooking, err)
		}
		booking, err = apiclient.Unwrap(s.api.CreateBooking(ctx, domain.CreateBookingRequest{
			ToolID:    toolID,
			StartDate: start,
			EndDate:   end,
			Quantity:  quantity,
			Notes:     notes,
		}))
		return "", err
	})
	return booking, err
}

// Review submits a review; it appears once moderated
func (s *Product) Review(ctx context.Context, req domain.CreateReviewRequest) (domain.Review, error) {
	var review domain.Review
	err := s.env.run(ctx, mutation{
		name:        "product.Review",
		invalidates: reviewReads,
		success:     notify.Success("Review submitted", "Your review will appear after moderation"),
		fallback:    "Could not submit the review",
	}, func(ctx context.Context) (string, error) {
		var err error
		review, err = apiclient.Unwrap(s.api.CreateReview(ctx, req))
		return "", err
	})
	return review, err
}
