package apiclient

import (
	"net/url"
	"strconv"
)

// queryBuilder adds only parameters that were actually set
type queryBuilder url.Values

func (q queryBuilder) str(key, v string) {
	if v != "" {
		url.Values(q).Set(key, v)
	}
}

func (q queryBuilder) int(key string, v int) {
	if v != 0 {
		url.Values(q).Set(key, strconv.Itoa(v))
	}
}

func (q queryBuilder) float(key string, v *float64) {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func (q queryBuilder) bool(key string, v *bool) {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatBool(*v))
	}
}

// ToolFilter narrows GET /tools
type ToolFilter struct {
	Category  string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	Available *bool
	Sort      string
	Order     string
	Page      int
	Limit     int
}

func (f ToolFilter) Values() url.Values {
	q := queryBuilder{}
	q.str("category", f.Category)
	q.str("brand", f.Brand)
	q.float("minPrice", f.MinPrice)
	q.float("maxPrice", f.MaxPrice)
	q.str("search", f.Search)
	q.bool("available", f.Available)
	q.str("sort", f.Sort)
	q.str("order", f.Order)
	q.int("page", f.Page)
	q.int("limit", f.Limit)
	return url.Values(q)
}

// OrderFilter narrows GET /orders
type OrderFilter struct {
	Status     string
	CustomerID string
	StartDate  string
	EndDate    string
	Page       int
	Limit      int
}

func (f OrderFilter) Values() url.Values {
	q := queryBuilder{}
	q.str("status", f.Status)
	q.str("customerId", f.CustomerID)
	q.str("startDate", f.StartDate)
	q.str("endDate", f.EndDate)
	q.int("page", f.Page)
	q.int("limit", f.Limit)
	return url.Values(q)
}

// ReviewFilter narrows GET /reviews
type ReviewFilter struct {
	Status string
	Page   int
	Limit  int
}

func (f ReviewFilter) Values() url.Values {
	q := queryBuilder{}
	q.str("status", f.Status)
	q.int("page", f.Page)
	q.int("limit", f.Limit)
	return url.Values(q)
}

// ToolReviewFilter narrows GET /reviews/tool/:toolId
type ToolReviewFilter struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

func (f ToolReviewFilter) Values() url.Values {
	q := queryBuilder{}
	q.int("page", f.Page)
	q.int("limit", f.Limit)
	q.str("sort", f.Sort)
	q.str("order", f.Order)
	return url.Values(q)
}

// BookingFilter narrows GET /bookings
type BookingFilter struct {
	Status string
	ToolID string
	Page   int
	Limit  int
}

func (f BookingFilter) Values() url.Values {
	q := queryBuilder{}
	q.str("status", f.Status)
	q.str("toolId", f.ToolID)
	q.int("page", f.Page)
	q.int("limit", f.Limit)
	return url.Values(q)
}

// DateRange bounds the order statistics
type DateRange struct {
	StartDate string
	EndDate   string
}

func (r DateRange) Values() url.Values {
	q := queryBuilder{}
	q.str("startDate", r.StartDate)
	q.str("endDate", r.EndDate)
	return url.Values(q)
}
