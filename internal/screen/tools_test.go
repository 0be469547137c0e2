package screen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/screen"
	"toolrent-console/internal/stats"
)

func TestToolDraft_Input(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		input, err := screen.ToolDraft{
			Name:       " Hammer drill ",
			Brand:      "Bosch",
			Category:   "drills",
			Price:      "25.5",
			Features:   "SDS plus, 800W ,, case",
			InStock:    "3",
			TotalStock: "5",
		}.Input()
		require.NoError(t, err)

		assert.Equal(t, "Hammer drill", *input.Name)
		assert.Equal(t, 25.5, *input.Price)
		assert.Equal(t, []string{"SDS plus", "800W", "case"}, input.Features)
		assert.Equal(t, []string{screen.DefaultToolImage}, input.Images)
		assert.Equal(t, screen.DefaultToolCondition, *input.Condition)
		assert.Equal(t, screen.DefaultToolLocation, *input.Location)
		assert.Equal(t, domain.ToolStatusAvailable, *input.Status)
		assert.True(t, *input.IsActive)
		assert.Equal(t, 3, *input.InStock)
		assert.Empty(t, input.Specifications)
		assert.NotNil(t, input.Included)
	})

	t.Run("Missing name", func(t *testing.T) {
		_, err := screen.ToolDraft{Price: "10"}.Input()
		assert.ErrorIs(t, err, screen.ErrInvalidDraft)
	})

	t.Run("Bad price", func(t *testing.T) {
		_, err := screen.ToolDraft{Name: "Saw", Price: "ten"}.Input()
		assert.ErrorIs(t, err, screen.ErrInvalidDraft)
	})
}

func TestToolDraft_Patch(t *testing.T) {
	t.Run("Only filled fields", func(t *testing.T) {
		in, err := screen.ToolDraft{Price: "30", InStock: "0"}.Patch("retired")
		require.NoError(t, err)
		assert.Nil(t, in.Name)
		assert.Equal(t, 30.0, *in.Price)
		assert.Equal(t, 0, *in.InStock)
		assert.Nil(t, in.TotalStock)
		assert.Equal(t, domain.ToolStatusRetired, *in.Status)
	})

	t.Run("Bad count", func(t *testing.T) {
		_, err := screen.ToolDraft{TotalStock: "many"}.Patch("")
		assert.ErrorIs(t, err, screen.ErrInvalidDraft)
	})
}

func TestTools_Load(t *testing.T) {
	ctx := context.Background()
	page := domain.ToolPage{Tools: []domain.Tool{
		{ID: "t1", Name: "Hammer drill", Category: "drills", InStock: 1},
		{ID: "t2", Name: "Drill press", Category: "stationary", InStock: 6},
		{ID: "t3", Name: "Impact drill", Category: "drills", InStock: 0},
	}}

	t.Run("Success", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("ListTools", mock.Anything, apiclient.ToolFilter{Search: "drill", Category: "drills", Page: 1, Limit: 100}).
			Return(ok(page), nil).Once()
		api.On("ListCategories", mock.Anything).Return(ok([]domain.Category{{Name: "drills"}}), nil).Once()

		view, err := screen.NewTools(env, api).Load(ctx, "drill", "drills")
		require.NoError(t, err)
		require.Len(t, view.Tools, 2)
		assert.Equal(t, stats.StockLow, view.Tools[0].Stock)
		assert.Equal(t, stats.StockOut, view.Tools[1].Stock)
		assert.Len(t, view.Categories, 1)
		api.AssertExpectations(t)
	})

	t.Run("Categories failure keeps the tools", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("ListTools", mock.Anything, apiclient.ToolFilter{Page: 1, Limit: 100}).Return(ok(page), nil).Once()
		api.On("ListCategories", mock.Anything).Return(nil, errors.New("down")).Once()

		view, err := screen.NewTools(env, api).Load(ctx, "", "")
		assert.Error(t, err)
		assert.Equal(t, "all", view.Category)
		assert.Len(t, view.Tools, 3)
	})
}

func TestTools_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid draft is not sent", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)

		_, err := screen.NewTools(env, api).Create(ctx, screen.ToolDraft{})
		assert.ErrorIs(t, err, screen.ErrInvalidDraft)
		assert.Equal(t, "Error", rec.last().Title)
		api.AssertNotCalled(t, "CreateTool", mock.Anything, mock.Anything)
	})

	t.Run("Toggle moves available to maintenance", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("UpdateTool", mock.Anything, "t1", mock.MatchedBy(func(in domain.ToolInput) bool {
			return in.Status != nil && *in.Status == domain.ToolStatusMaintenance && in.Name == nil
		})).Return(ack(), nil).Once()

		next, err := screen.NewTools(env, api).ToggleAvailability(ctx, "t1", domain.ToolStatusAvailable)
		require.NoError(t, err)
		assert.Equal(t, domain.ToolStatusMaintenance, next)
		api.AssertExpectations(t)
	})

	t.Run("Toggle brings rented back to available", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("UpdateTool", mock.Anything, "t1", mock.Anything).Return(ack(), nil).Once()

		next, err := screen.NewTools(env, api).ToggleAvailability(ctx, "t1", domain.ToolStatusRented)
		require.NoError(t, err)
		assert.Equal(t, domain.ToolStatusAvailable, next)
	})

	t.Run("Edit refreshes every view of the tool", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("UpdateTool", mock.Anything, "drill", mock.MatchedBy(func(in domain.ToolInput) bool {
			return in.Name != nil && *in.Name == "Rotary drill"
		})).Return(ack(), nil).Once()

		seed(t, env, screen.ResAdminTools, screen.ResTool, screen.ResCategories, screen.ResDashboardTools,
			screen.ResPopularAnalytics, screen.ResAllToolsAnalytic, screen.ResAdminBookings)
		require.NoError(t, screen.NewTools(env, api).Edit(ctx, "drill", screen.ToolDraft{Name: "Rotary drill"}, ""))

		assertDropped(t, env, screen.ResAdminTools, screen.ResTool, screen.ResCategories, screen.ResDashboardTools,
			screen.ResPopularAnalytics, screen.ResAllToolsAnalytic)
		assert.True(t, env.Cache.Cached(querycache.Key{screen.ResAdminBookings}))
		api.AssertExpectations(t)
	})

	t.Run("Delete refreshes the dashboard", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("DeleteTool", mock.Anything, "drill").Return(ack(), nil).Once()

		seed(t, env, screen.ResDashboardTools, screen.ResCategories)
		require.NoError(t, screen.NewTools(env, api).Delete(ctx, "drill"))
		assertDropped(t, env, screen.ResDashboardTools, screen.ResCategories)
	})

	t.Run("Edit with a bad price is not sent", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)

		err := screen.NewTools(env, api).Edit(ctx, "t1", screen.ToolDraft{Price: "cheap"}, "")
		assert.ErrorIs(t, err, screen.ErrInvalidDraft)
		assert.Equal(t, notify.VariantDestructive, rec.last().Variant)
		api.AssertNotCalled(t, "UpdateTool", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete failure", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)
		api.On("DeleteTool", mock.Anything, "t1").Return(nil, rejected("Tool has active rentals")).Once()

		err := screen.NewTools(env, api).Delete(ctx, "t1")
		assert.Error(t, err)
		assert.Equal(t, "Tool has active rentals", rec.last().Description)
	})
}
