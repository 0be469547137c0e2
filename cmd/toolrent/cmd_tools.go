package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/screen"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Browse and manage the tool catalog",
}

var toolsListFlags struct {
	search, category string
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog tools (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.tools.Load(cmd.Context(), toolsListFlags.search, toolsListFlags.category)
		if printErr := emit(cmd.OutOrStdout(), view.Tools, func() error {
			rows := make([][]string, 0, len(view.Tools))
			for _, t := range view.Tools {
				rows = append(rows, []string{
					t.ID, t.Name, t.Brand, t.Category, money(t.Price),
					fmt.Sprintf("%d/%d", t.InStock, t.TotalStock), string(t.Stock), string(t.Status),
				})
			}
			return table(cmd.OutOrStdout(), []string{"ID", "NAME", "BRAND", "CATEGORY", "PRICE/DAY", "STOCK", "LEVEL", "STATUS"}, rows)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var toolsShowFlags struct {
	days, quantity int
}

var toolsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a tool with prices and reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.product.Load(cmd.Context(), args[0], toolsShowFlags.days, toolsShowFlags.quantity)
		if view.Tool.ID == "" {
			return err
		}
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			out := cmd.OutOrStdout()
			t := view.Tool
			fmt.Fprintf(out, "%s (%s %s)\n%s\n", t.Name, t.Brand, t.Model, t.Description)
			fmt.Fprintf(out, "price/day: %s  stock: %d/%d  status: %s  rating: %.1f (%d)\n\n",
				money(t.Price), t.InStock, t.TotalStock, t.Status, view.Rating.Rating, view.Rating.Count)
			rows := make([][]string, 0, len(view.Periods))
			for _, p := range view.Periods {
				rows = append(rows, []string{strconv.Itoa(p.Days), fmt.Sprintf("%d%%", p.Discount), money(p.Price)})
			}
			if err := table(out, []string{"DAYS", "DISCOUNT", "PRICE"}, rows); err != nil {
				return err
			}
			q := view.Quote
			fmt.Fprintf(out, "\n%d x %d days: %s (save %s)\n", q.Quantity, q.Period.Days, money(q.Total), money(q.Savings))
			for _, r := range view.Reviews {
				fmt.Fprintf(out, "\n%d/5 %s\n  %s\n", r.Rating, r.Title, r.Comment)
			}
			return nil
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var toolDraft screen.ToolDraft
var toolStatus string

func draftFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&toolDraft.Name, "name", "", "Name")
	f.StringVar(&toolDraft.Brand, "brand", "", "Brand")
	f.StringVar(&toolDraft.Category, "category", "", "Category")
	f.StringVar(&toolDraft.Subcategory, "subcategory", "", "Subcategory")
	f.StringVar(&toolDraft.Price, "price", "", "Price per day")
	f.StringVar(&toolDraft.Description, "description", "", "Short description")
	f.StringVar(&toolDraft.FullDescription, "full-description", "", "Full description")
	f.StringVar(&toolDraft.Features, "features", "", "Features, comma separated")
	f.StringVar(&toolDraft.InStock, "in-stock", "", "Units in stock")
	f.StringVar(&toolDraft.TotalStock, "total-stock", "", "Units owned")
}

var toolsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a tool to the catalog (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, err := a.tools.Create(cmd.Context(), toolDraft)
		if err != nil {
			return reported(err)
		}
		return emit(cmd.OutOrStdout(), tool, func() error {
			fmt.Fprintln(cmd.OutOrStdout(), tool.ID)
			return nil
		})
	},
}

var toolsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change tool fields; only the flags given are sent (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.tools.Edit(cmd.Context(), args[0], toolDraft, toolStatus))
	},
}

var toolsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a tool from the catalog (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.tools.Delete(cmd.Context(), args[0]))
	},
}

var toolsToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Switch a tool between available and maintenance (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, err := apiclient.Unwrap(a.client.GetTool(cmd.Context(), args[0]))
		if err != nil {
			return err
		}
		next, err := a.tools.ToggleAvailability(cmd.Context(), tool.ID, tool.Status)
		if err != nil {
			return reported(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", tool.Name, tool.Status, next)
		return nil
	},
}

var toolsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List tool categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := apiclient.Unwrap(a.client.ListCategories(cmd.Context()))
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), cats, func() error {
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{c.Name, strings.Join(c.Subcategories, ", ")})
			}
			return table(cmd.OutOrStdout(), []string{"CATEGORY", "SUBCATEGORIES"}, rows)
		})
	},
}

var popularLimit int

var toolsPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most rented tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := apiclient.Unwrap(a.client.PopularTools(cmd.Context(), popularLimit))
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), tools, func() error {
			return toolTable(cmd, tools)
		})
	},
}

func toolTable(cmd *cobra.Command, tools []domain.Tool) error {
	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, []string{t.ID, t.Name, strconv.Itoa(t.TotalRentals), money(t.TotalRevenue), fmt.Sprintf("%.1f", t.Rating)})
	}
	return table(cmd.OutOrStdout(), []string{"ID", "NAME", "RENTALS", "REVENUE", "RATING"}, rows)
}

func init() {
	toolsListCmd.Flags().StringVar(&toolsListFlags.search, "search", "", "Match name, brand or category")
	toolsListCmd.Flags().StringVar(&toolsListFlags.category, "category", "", "Only this category")

	toolsShowCmd.Flags().IntVar(&toolsShowFlags.days, "days", 1, "Rental period to price")
	toolsShowCmd.Flags().IntVar(&toolsShowFlags.quantity, "quantity", 1, "Units to price")

	draftFlags(toolsCreateCmd)
	_ = toolsCreateCmd.MarkFlagRequired("name")
	draftFlags(toolsUpdateCmd)
	toolsUpdateCmd.Flags().StringVar(&toolStatus, "status", "", "available, rented, maintenance or retired")

	toolsPopularCmd.Flags().IntVar(&popularLimit, "limit", apiclient.DefaultPopularLimit, "How many tools")

	toolsCmd.AddCommand(toolsListCmd, toolsShowCmd, toolsCreateCmd, toolsUpdateCmd, toolsDeleteCmd,
		toolsToggleCmd, toolsCategoriesCmd, toolsPopularCmd)
}
