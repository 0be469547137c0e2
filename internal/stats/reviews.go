package stats

import "toolrent-console/internal/domain"

type ModerationState string

const (
	ModerationPending   ModerationState = "pending"
	ModerationPublished ModerationState = "published"
)

func ModerationStateOf(r domain.Review) ModerationState {
	if r.IsApproved {
		return ModerationPublished
	}
	return ModerationPending
}

type ReviewSummary struct {
	Total         int
	Pending       int
	Published     int
	AverageRating float64
}

func SummarizeReviews(reviews []domain.Review) ReviewSummary {
	s := ReviewSummary{Total: len(reviews)}
	sum := 0
	for _, r := range reviews {
		if r.IsApproved {
			s.Published++
		} else {
			s.Pending++
		}
		sum += r.Rating
	}
	if len(reviews) > 0 {
		s.AverageRating = float64(sum) / float64(len(reviews))
	}
	return s
}
