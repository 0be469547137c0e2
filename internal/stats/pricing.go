package stats

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// RentalPeriod is one of the fixed rental durations offered for a tool
type RentalPeriod struct {
	Days     int
	Discount int     // percent
	Price    float64 // for the whole period, one unit
}

// periodDiscounts are the offered durations and their discounts, shortest first
var periodDiscounts = []struct {
	days     int
	discount int
}{
	{1, 0},
	{3, 10},
	{7, 15},
	{14, 20},
	{30, 30},
}

// RentalPeriods prices every offered duration for a daily price
func RentalPeriods(pricePerDay float64) []RentalPeriod {
	periods := make([]RentalPeriod, len(periodDiscounts))
	for i, p := range periodDiscounts {
		periods[i] = RentalPeriod{
			Days:     p.days,
			Discount: p.discount,
			Price:    pricePerDay * float64(p.days) * float64(100-p.discount) / 100,
		}
	}
	return periods
}

// RentalQuote provides detailed cost breakdown
type RentalQuote struct {
	Period      RentalPeriod
	Quantity    int
	Total       float64
	Savings     float64 // against the undiscounted daily price
	PerDayPrice float64 // effective, rounded
}

// Quote prices quantity units for days. A day count that is not an offered
// period falls back to the 1-day period; quantity below 1 counts as 1.
func Quote(pricePerDay float64, days, quantity int) RentalQuote {
	if quantity < 1 {
		quantity = 1
	}
	periods := RentalPeriods(pricePerDay)
	period := periods[0]
	for _, p := range periods {
		if p.Days == days {
			period = p
			break
		}
	}

	total := period.Price * float64(quantity)
	return RentalQuote{
		Period:      period,
		Quantity:    quantity,
		Total:       total,
		Savings:     pricePerDay*float64(period.Days*quantity) - total,
		PerDayPrice: math.Round(total / float64(period.Days)),
	}
}

// ParseDate converts a yyyy-mm-dd string into a UTC date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %w", err)
	}
	return t, nil
}

// RentalDays counts the calendar days from start to end, both included
func RentalDays(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if e.Before(s) {
		return 0, fmt.Errorf("end date must be >= start date")
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// EndDateFor is the last day of a rental of days starting on start
func EndDateFor(start string, days int) (string, error) {
	s, err := ParseDate(start)
	if err != nil {
		return "", err
	}
	if days < 1 {
		days = 1
	}
	return s.AddDate(0, 0, days-1).Format(dateLayout), nil
}
