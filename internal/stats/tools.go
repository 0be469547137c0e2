package stats

import (
	"math"
	"strings"

	"toolrent-console/internal/domain"
)

// LowStockThreshold and CriticalStockThreshold bound the stock warnings
const (
	LowStockThreshold      = 2
	CriticalStockThreshold = 1
)

type StockLevel string

const (
	StockOut StockLevel = "out_of_stock"
	StockLow StockLevel = "low"
	StockOK  StockLevel = "in_stock"
)

func StockLevelOf(inStock int) StockLevel {
	switch {
	case inStock <= 0:
		return StockOut
	case inStock <= LowStockThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// NextAvailabilityStatus is the status an availability toggle moves a tool to
func NextAvailabilityStatus(current domain.ToolStatus) domain.ToolStatus {
	if current == domain.ToolStatusAvailable {
		return domain.ToolStatusMaintenance
	}
	return domain.ToolStatusAvailable
}

// FilterTools keeps tools whose name, brand or category contains search
// (ignoring case) and whose category equals category ("all" or "" keeps all).
func FilterTools(tools []domain.Tool, search, category string) []domain.Tool {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Tool, 0, len(tools))
	for _, t := range tools {
		if category != "" && category != AllStatuses && t.Category != category {
			continue
		}
		if term != "" && !containsFold(t.Name, term) && !containsFold(t.Brand, term) && !containsFold(t.Category, term) {
			continue
		}
		out = append(out, t)
	}
	return out
}

type LowStockTool struct {
	ID       string
	Name     string
	Stock    int
	Critical bool
}

// LowStock lists the first limit tools at or below the low-stock threshold
func LowStock(tools []domain.Tool, limit int) []LowStockTool {
	var out []LowStockTool
	for _, t := range tools {
		if len(out) == limit {
			break
		}
		if t.InStock > LowStockThreshold {
			continue
		}
		out = append(out, LowStockTool{
			ID:       t.ID,
			Name:     t.Name,
			Stock:    t.InStock,
			Critical: t.InStock <= CriticalStockThreshold,
		})
	}
	return out
}

func CountByToolStatus(tools []domain.Tool) map[domain.ToolStatus]int {
	counts := make(map[domain.ToolStatus]int)
	for _, t := range tools {
		counts[t.Status]++
	}
	return counts
}

func RentedCount(tools []domain.Tool) int {
	return CountByToolStatus(tools)[domain.ToolStatusRented]
}

type CategoryShare struct {
	Name    string
	Revenue float64
	Rentals int
	Share   int // percent of total revenue
}

// CategoryBreakdown groups tools by category in first-seen order
func CategoryBreakdown(tools []domain.Tool) []CategoryShare {
	var out []CategoryShare
	index := make(map[string]int)
	var total float64
	for _, t := range tools {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryShare{Name: t.Category})
		}
		out[i].Revenue += t.TotalRevenue
		out[i].Rentals += t.TotalRentals
		total += t.TotalRevenue
	}
	for i := range out {
		if total > 0 {
			out[i].Share = int(math.Round(out[i].Revenue / total * 100))
		}
	}
	return out
}

// UtilizationCapacity is the rental count treated as full utilization
const UtilizationCapacity = 200

// Utilization is rentals as a percentage of capacity, capped at 100
func Utilization(rentals int) float64 {
	return math.Min(float64(rentals)/UtilizationCapacity*100, 100)
}

type TopTool struct {
	ID          string
	Name        string
	Rentals     int
	Revenue     float64
	Rating      float64
	Utilization float64
}

// TopTools takes the first n tools of an already ranked list
func TopTools(tools []domain.Tool, n int) []TopTool {
	if n > len(tools) {
		n = len(tools)
	}
	out := make([]TopTool, 0, n)
	for _, t := range tools[:n] {
		out = append(out, TopTool{
			ID:          t.ID,
			Name:        t.Name,
			Rentals:     t.TotalRentals,
			Revenue:     t.TotalRevenue,
			Rating:      t.Rating,
			Utilization: Utilization(t.TotalRentals),
		})
	}
	return out
}

// SplitList turns a comma-separated form value into trimmed items
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
