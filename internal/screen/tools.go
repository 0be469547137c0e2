package screen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

const toolsPageLimit = 100

// Catalog defaults applied to tools created from a draft
const (
	DefaultToolImage     = "/img/tool-placeholder.jpg"
	DefaultToolCondition = "excellent"
	DefaultToolLocation  = "main_warehouse"
)

var ErrInvalidDraft = errors.New("invalid tool draft")

type ToolsAPI interface {
	ListTools(ctx context.Context, filter apiclient.ToolFilter) (*apiclient.Envelope[domain.ToolPage], error)
	ListCategories(ctx context.Context) (*apiclient.Envelope[[]domain.Category], error)
	CreateTool(ctx context.Context, input domain.ToolInput) (*apiclient.Envelope[domain.Tool], error)
	UpdateTool(ctx context.Context, id string, input domain.ToolInput) (*apiclient.Ack, error)
	DeleteTool(ctx context.Context, id string) (*apiclient.Ack, error)
}

type ToolRow struct {
	domain.Tool
	Stock stats.StockLevel
}

type ToolsView struct {
	Search     string
	Category   string
	Tools      []ToolRow
	Categories []domain.Category
}

// ToolDraft is the create form as entered: numbers are still text and
// features are one comma-separated string.
type ToolDraft struct {
	Name            string
	Brand           string
	Category        string
	Subcategory     string
	Price           string
	Description     string
	FullDescription string
	Features        string
	InStock         string
	TotalStock      string
}

// Input converts the draft into a create request with the catalog defaults
func (d ToolDraft) Input() (domain.ToolInput, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return domain.ToolInput{}, fmt.Errorf("%w: name is required", ErrInvalidDraft)
	}
	price, err := parseNumber(d.Price)
	if err != nil {
		return domain.ToolInput{}, fmt.Errorf("%w: price: %v", ErrInvalidDraft, err)
	}
	inStock, err := parseCount(d.InStock)
	if err != nil {
		return domain.ToolInput{}, fmt.Errorf("%w: in stock: %v", ErrInvalidDraft, err)
	}
	totalStock, err := parseCount(d.TotalStock)
	if err != nil {
		return domain.ToolInput{}, fmt.Errorf("%w: total stock: %v", ErrInvalidDraft, err)
	}

	status := domain.ToolStatusAvailable
	active := true
	return domain.ToolInput{
		Name:            &name,
		Brand:           ptr(d.Brand),
		Category:        ptr(d.Category),
		Subcategory:     ptr(d.Subcategory),
		Price:           &price,
		Images:          []string{DefaultToolImage},
		Description:     ptr(d.Description),
		FullDescription: ptr(d.FullDescription),
		Features:        stats.SplitList(d.Features),
		InStock:         &inStock,
		TotalStock:      &totalStock,
		Specifications:  map[string]string{},
		Included:        []string{},
		Condition:       ptr(DefaultToolCondition),
		Location:        ptr(DefaultToolLocation),
		Status:          &status,
		IsActive:        &active,
	}, nil
}

// Patch converts the draft into an update request carrying only the fields
// that were filled in. Status is set when status is not empty.
func (d ToolDraft) Patch(status string) (domain.ToolInput, error) {
	var in domain.ToolInput
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&in.Name, d.Name)
	set(&in.Brand, d.Brand)
	set(&in.Category, d.Category)
	set(&in.Subcategory, d.Subcategory)
	set(&in.Description, d.Description)
	set(&in.FullDescription, d.FullDescription)

	if strings.TrimSpace(d.Price) != "" {
		price, err := parseNumber(d.Price)
		if err != nil {
			return in, fmt.Errorf("%w: price: %v", ErrInvalidDraft, err)
		}
		in.Price = &price
	}
	if strings.TrimSpace(d.InStock) != "" {
		n, err := parseCount(d.InStock)
		if err != nil {
			return in, fmt.Errorf("%w: in stock: %v", ErrInvalidDraft, err)
		}
		in.InStock = &n
	}
	if strings.TrimSpace(d.TotalStock) != "" {
		n, err := parseCount(d.TotalStock)
		if err != nil {
			return in, fmt.Errorf("%w: total stock: %v", ErrInvalidDraft, err)
		}
		in.TotalStock = &n
	}
	if strings.TrimSpace(d.Features) != "" {
		in.Features = stats.SplitList(d.Features)
	}
	if status != "" {
		st := domain.ToolStatus(status)
		in.Status = &st
	}
	return in, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func ptr[T any](v T) *T {
	return &v
}

// Tools is the admin catalog screen
type Tools struct {
	env *Env
	api ToolsAPI
}

func NewTools(env *Env, api ToolsAPI) *Tools {
	return &Tools{env: env, api: api}
}

func (s *Tools) Load(ctx context.Context, search, category string) (ToolsView, error) {
	if category == "" {
		category = stats.AllStatuses
	}
	view := ToolsView{Search: search, Category: category}

	page, listErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResAdminTools, search, category},
		func(ctx context.Context) (domain.ToolPage, error) {
			return apiclient.Unwrap(s.api.ListTools(ctx, apiclient.ToolFilter{
				Search:   strings.TrimSpace(search),
				Category: stats.StatusParam(category),
				Page:     1,
				Limit:    toolsPageLimit,
			}))
		})
	if listErr == nil {
		for _, t := range stats.FilterTools(page.Tools, search, category) {
			view.Tools = append(view.Tools, ToolRow{Tool: t, Stock: stats.StockLevelOf(t.InStock)})
		}
	}

	cats, catErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResCategories},
		func(ctx context.Context) ([]domain.Category, error) {
			return apiclient.Unwrap(s.api.ListCategories(ctx))
		})
	if catErr == nil {
		view.Categories = cats
	}

	return view, errors.Join(listErr, catErr)
}

// Create adds a tool from a draft. A draft that does not parse is reported
// like any other failure and nothing is sent.
func (s *Tools) Create(ctx context.Context, draft ToolDraft) (domain.Tool, error) {
	var tool domain.Tool
	err := s.env.run(ctx, mutation{
		name:        "tools.Create",
		invalidates: toolReads,
		success:     notify.Success("Tool created", "The tool was added to the catalog"),
		fallback:    "Could not create the tool",
	}, func(ctx context.Context) (string, error) {
		input, err := draft.Input()
		if err != nil {
			return "", err
		}
		tool, err = apiclient.Unwrap(s.api.CreateTool(ctx, input))
		return "", err
	})
	return tool, err
}

func (s *Tools) Update(ctx context.Context, id string, input domain.ToolInput) error {
	return s.env.run(ctx, mutation{
		name:        "tools.Update",
		invalidates: toolReads,
		success:     notify.Success("Tool updated", "The changes were saved"),
		fallback:    "Could not update the tool",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.UpdateTool(ctx, id, input))
	})
}

// Edit applies the filled-in fields of a draft and an optional status
func (s *Tools) Edit(ctx context.Context, id string, draft ToolDraft, status string) error {
	return s.env.run(ctx, mutation{
		name:        "tools.Edit",
		invalidates: toolReads,
		success:     notify.Success("Tool updated", "The changes were saved"),
		fallback:    "Could not update the tool",
	}, func(ctx context.Context) (string, error) {
		input, err := draft.Patch(status)
		if err != nil {
			return "", err
		}
		return done(s.api.UpdateTool(ctx, id, input))
	})
}

func (s *Tools) Delete(ctx context.Context, id string) error {
	return s.env.run(ctx, mutation{
		name:        "tools.Delete",
		invalidates: toolReads,
		success:     notify.Success("Tool deleted", "The tool was removed from the catalog"),
		fallback:    "Could not delete the tool",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.DeleteTool(ctx, id))
	})
}

// ToggleAvailability flips a tool between available and maintenance; any
// other status goes back to available.
func (s *Tools) ToggleAvailability(ctx context.Context, id string, current domain.ToolStatus) (domain.ToolStatus, error) {
	next := stats.NextAvailabilityStatus(current)
	err := s.Update(ctx, id, domain.ToolInput{Status: &next})
	return next, err
}
