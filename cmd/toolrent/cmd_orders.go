package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/stats"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Browse and manage rental orders",
}

var ordersListFlags struct {
	status, search string
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders with a status summary (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.orders.Load(cmd.Context(), ordersListFlags.status, ordersListFlags.search)
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			out := cmd.OutOrStdout()
			s := view.Summary
			fmt.Fprintf(out, "total %d  pending %d  active %d  completed %d  revenue %s\n\n",
				s.Total, s.Pending, s.Active, s.Completed, money(s.Revenue))
			rows := make([][]string, 0, len(view.Orders))
			for _, o := range view.Orders {
				left := "-"
				if o.HasDaysLeft {
					left = strconv.Itoa(o.DaysLeft)
				}
				rows = append(rows, []string{
					o.ID, o.OrderNumber, o.CustomerInfo.FirstName + " " + o.CustomerInfo.LastName,
					stats.FormatDate(o.StartDate), stats.FormatDate(o.EndDate), left, money(o.Total), string(o.Status),
				})
			}
			return table(out, []string{"ID", "ORDER", "CUSTOMER", "START", "END", "DAYS LEFT", "TOTAL", "STATUS"}, rows)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one order with its items and timeline (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := a.orders.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), o, func() error {
			out := cmd.OutOrStdout()
			c := o.CustomerInfo
			fmt.Fprintf(out, "%s  %s  payment %s  delivery %s\n", o.OrderNumber, o.Status, o.PaymentStatus, o.DeliveryStatus)
			fmt.Fprintf(out, "%s %s <%s> %s %s\n", c.FirstName, c.LastName, c.Email, c.Phone, c.Company)
			fmt.Fprintf(out, "%s to %s (%d days), deliver to %s\n\n",
				stats.FormatDate(o.StartDate), stats.FormatDate(o.EndDate), o.TotalDays, o.DeliveryInfo.Address)
			rows := make([][]string, 0, len(o.Items))
			for _, it := range o.Items {
				rows = append(rows, []string{it.ToolName, strconv.Itoa(it.Quantity), strconv.Itoa(it.Days), money(it.PricePerDay), money(it.Total)})
			}
			if err := table(out, []string{"TOOL", "QTY", "DAYS", "PRICE/DAY", "TOTAL"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nsubtotal %s  tax %s  total %s  deposit %s\n", money(o.Subtotal), money(o.Tax), money(o.Total), money(o.Deposit))
			for _, e := range o.Timeline {
				fmt.Fprintf(out, "%s  %-10s %s\n", stats.FormatDate(e.Timestamp), e.Status, e.Note)
			}
			return nil
		})
	},
}

var orderDraft struct {
	items                             []string
	start, end                        string
	firstName, lastName, email, phone string
	company, address, payment, notes  string
}

// parseOrderLine reads toolId:quantity:days; quantity and days default to 1
func parseOrderLine(s string) (domain.OrderLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return domain.OrderLine{}, fmt.Errorf("invalid item %q, expected toolId[:quantity[:days]]", s)
	}
	line := domain.OrderLine{ToolID: parts[0], Quantity: 1, Days: 1}
	for i, dst := range []*int{&line.Quantity, &line.Days} {
		if len(parts) <= i+1 {
			break
		}
		n, err := strconv.Atoi(parts[i+1])
		if err != nil || n < 1 {
			return domain.OrderLine{}, fmt.Errorf("invalid item %q: %q is not a positive number", s, parts[i+1])
		}
		*dst = n
	}
	return line, nil
}

// orderRequest builds the order from flags; customer fields left empty are
// taken from the signed-in user.
func orderRequest() (domain.CreateOrderRequest, error) {
	if len(orderDraft.items) == 0 {
		return domain.CreateOrderRequest{}, errors.New("at least one --item is required")
	}
	req := domain.CreateOrderRequest{
		StartDate:     orderDraft.start,
		EndDate:       orderDraft.end,
		DeliveryInfo:  domain.DeliveryInfo{Address: orderDraft.address},
		PaymentMethod: orderDraft.payment,
		Notes:         orderDraft.notes,
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	if _, err := stats.RentalDays(req.StartDate, req.EndDate); err != nil {
		return req, err
	}
	for _, s := range orderDraft.items {
		line, err := parseOrderLine(s)
		if err != nil {
			return req, err
		}
		req.Items = append(req.Items, line)
	}

	c := domain.CustomerInfo{
		FirstName: orderDraft.firstName,
		LastName:  orderDraft.lastName,
		Email:     orderDraft.email,
		Phone:     orderDraft.phone,
		Company:   orderDraft.company,
	}
	if u := a.session.User(); u != nil {
		fill := func(dst *string, v string) {
			if *dst == "" {
				*dst = v
			}
		}
		fill(&c.FirstName, u.FirstName)
		fill(&c.LastName, u.LastName)
		fill(&c.Email, u.Email)
		fill(&c.Phone, u.Phone)
		fill(&c.Company, u.Company)
		if req.DeliveryInfo.Address == "" {
			req.DeliveryInfo.Address = u.Address
		}
	}
	req.CustomerInfo = c
	return req, nil
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Place an order",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := orderRequest()
		if err != nil {
			return err
		}
		order, err := a.orders.Create(cmd.Context(), req)
		if err != nil {
			return reported(err)
		}
		return emit(cmd.OutOrStdout(), order, func() error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s total %s\n", order.ID, order.OrderNumber, money(order.Total))
			return nil
		})
	},
}

var orderNote string

var ordersStatusCmd = &cobra.Command{
	Use:       "status <id> <status>",
	Short:     "Move an order to another status (admin)",
	Args:      cobra.ExactArgs(2),
	ValidArgs: orderStatusNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := domain.OrderStatus(args[1])
		if !validOrderStatus(status) {
			return fmt.Errorf("unknown order status %q, expected one of %s", args[1], strings.Join(orderStatusNames(), ", "))
		}
		return reported(a.orders.UpdateStatus(cmd.Context(), args[0], status, orderNote))
	},
}

func orderStatusNames() []string {
	names := make([]string, len(domain.OrderStatuses))
	for i, s := range domain.OrderStatuses {
		names[i] = string(s)
	}
	return names
}

func validOrderStatus(status domain.OrderStatus) bool {
	for _, s := range domain.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var cancelReason string

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an order (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.orders.Cancel(cmd.Context(), args[0], cancelReason))
	},
}

var statsRange apiclient.DateRange

var ordersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show order statistics for a date range (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := apiclient.Unwrap(a.client.OrderStatistics(cmd.Context(), statsRange))
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), st, func() error {
			rows := [][]string{
				{"total", strconv.Itoa(st.Total)},
				{"pending", strconv.Itoa(st.Pending)},
				{"confirmed", strconv.Itoa(st.Confirmed)},
				{"active", strconv.Itoa(st.Active)},
				{"completed", strconv.Itoa(st.Completed)},
				{"cancelled", strconv.Itoa(st.Cancelled)},
				{"revenue", money(st.TotalRevenue)},
				{"average order", money(st.AverageOrderValue)},
			}
			return table(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, rows)
		})
	},
}

func init() {
	ordersListCmd.Flags().StringVar(&ordersListFlags.status, "status", "", "Only this status")
	ordersListCmd.Flags().StringVar(&ordersListFlags.search, "search", "", "Match order number, customer name or email")

	f := ordersCreateCmd.Flags()
	f.StringArrayVar(&orderDraft.items, "item", nil, "toolId[:quantity[:days]], repeatable")
	f.StringVar(&orderDraft.start, "start", "", "Start date (yyyy-mm-dd)")
	f.StringVar(&orderDraft.end, "end", "", "End date (yyyy-mm-dd), defaults to the start date")
	f.StringVar(&orderDraft.firstName, "first-name", "", "Customer first name")
	f.StringVar(&orderDraft.lastName, "last-name", "", "Customer last name")
	f.StringVar(&orderDraft.email, "email", "", "Customer email")
	f.StringVar(&orderDraft.phone, "phone", "", "Customer phone")
	f.StringVar(&orderDraft.company, "company", "", "Customer company")
	f.StringVar(&orderDraft.address, "address", "", "Delivery address")
	f.StringVar(&orderDraft.payment, "payment", "card", "Payment method")
	f.StringVar(&orderDraft.notes, "notes", "", "Notes for the order")
	_ = ordersCreateCmd.MarkFlagRequired("start")

	ordersStatusCmd.Flags().StringVar(&orderNote, "note", "", "Timeline note")
	ordersCancelCmd.Flags().StringVar(&cancelReason, "reason", "", "Why the order is cancelled")

	ordersStatsCmd.Flags().StringVar(&statsRange.StartDate, "start", "", "From date (yyyy-mm-dd)")
	ordersStatsCmd.Flags().StringVar(&statsRange.EndDate, "end", "", "To date (yyyy-mm-dd)")

	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersCreateCmd, ordersStatusCmd, ordersCancelCmd, ordersStatsCmd)
}
