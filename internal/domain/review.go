package domain

type ReviewResponse struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

type Review struct {
	ID             string          `json:"_id"`
	ToolID         string          `json:"toolId"`
	CustomerID     string          `json:"customerId"`
	OrderID        string          `json:"orderId,omitempty"`
	Rating         int             `json:"rating"`
	Title          string          `json:"title"`
	Comment        string          `json:"comment"`
	Pros           []string        `json:"pros"`
	Cons           []string        `json:"cons"`
	WouldRecommend bool            `json:"wouldRecommend"`
	IsVerified     bool            `json:"isVerified"`
	IsApproved     bool            `json:"isApproved"`
	HelpfulVotes   int             `json:"helpfulVotes"`
	ReportCount    int             `json:"reportCount"`
	Response       *ReviewResponse `json:"response,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

type CreateReviewRequest struct {
	ToolID         string   `json:"toolId"`
	OrderID        string   `json:"orderId,omitempty"`
	Rating         int      `json:"rating"`
	Title          string   `json:"title"`
	Comment        string   `json:"comment"`
	Pros           []string `json:"pros,omitempty"`
	Cons           []string `json:"cons,omitempty"`
	WouldRecommend *bool    `json:"wouldRecommend,omitempty"`
}

// ToolRating is the aggregate rating returned with a tool's reviews
type ToolRating struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}
