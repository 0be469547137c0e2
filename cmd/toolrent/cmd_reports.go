package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show revenue, recent orders and low stock (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.dashboard.Load(cmd.Context())
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "revenue %s  active orders %d  tools rented %d\n\nRecent orders\n",
				money(view.TotalRevenue), view.ActiveOrders, view.ToolsRented)
			rows := make([][]string, 0, len(view.RecentOrders))
			for _, o := range view.RecentOrders {
				rows = append(rows, []string{o.Number, o.Customer, o.Tools, money(o.Amount), string(o.Status), o.Date})
			}
			if err := table(out, []string{"ORDER", "CUSTOMER", "TOOLS", "AMOUNT", "STATUS", "DATE"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nLow stock")
			rows = rows[:0]
			for _, t := range view.LowStock {
				level := "low"
				if t.Critical {
					level = "critical"
				}
				rows = append(rows, []string{t.Name, strconv.Itoa(t.Stock), level})
			}
			return table(out, []string{"TOOL", "LEFT", "LEVEL"}, rows)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show top tools and revenue by category (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.analytics.Load(cmd.Context())
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "revenue %s  orders %d  average order %s",
				money(view.TotalRevenue), view.TotalOrders, money(view.AverageOrderValue))
			if view.HasGrowth {
				fmt.Fprintf(out, "  growth (30 days) %+.1f%%", view.RevenueGrowth)
			}
			fmt.Fprint(out, "\n\nTop tools\n")
			rows := make([][]string, 0, len(view.TopTools))
			for _, t := range view.TopTools {
				rows = append(rows, []string{t.Name, strconv.Itoa(t.Rentals), money(t.Revenue),
					fmt.Sprintf("%.1f", t.Rating), fmt.Sprintf("%.0f%%", t.Utilization)})
			}
			if err := table(out, []string{"TOOL", "RENTALS", "REVENUE", "RATING", "UTILIZATION"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nCategories")
			rows = rows[:0]
			for _, c := range view.Categories {
				rows = append(rows, []string{c.Name, strconv.Itoa(c.Rentals), money(c.Revenue), fmt.Sprintf("%d%%", c.Share)})
			}
			return table(out, []string{"CATEGORY", "RENTALS", "REVENUE", "SHARE"}, rows)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}
