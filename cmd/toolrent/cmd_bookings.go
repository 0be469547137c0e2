package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/stats"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Hold tools and manage holds",
}

func bookingTable(out io.Writer, bookings []domain.Booking) error {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			b.ID, b.ToolID, stats.FormatDate(b.StartDate), stats.FormatDate(b.EndDate),
			strconv.Itoa(b.Quantity), money(b.TotalPrice), string(b.Status), stats.FormatDate(b.ExpiresAt),
		})
	}
	return table(out, []string{"ID", "TOOL", "START", "END", "QTY", "TOTAL", "STATUS", "EXPIRES"}, rows)
}

var bookingsListFlags struct {
	status, search string
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bookings (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.bookings.Load(cmd.Context(), bookingsListFlags.status, bookingsListFlags.search)
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			s := view.Summary
			fmt.Fprintf(cmd.OutOrStdout(), "total %d  pending %d  confirmed %d  cancelled %d  expired %d\n\n",
				s.Total, s.Pending, s.Confirmed, s.Cancelled, s.Expired)
			return bookingTable(cmd.OutOrStdout(), view.Bookings)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var myBookingsStatus string

var bookingsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		bookings, err := apiclient.Unwrap(a.client.MyBookings(cmd.Context(), myBookingsStatus))
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), bookings, func() error {
			return bookingTable(cmd.OutOrStdout(), bookings)
		})
	},
}

var bookingDraft struct {
	start, notes   string
	days, quantity int
}

var bookingsCreateCmd = &cobra.Command{
	Use:   "create <toolId>",
	Short: "Hold a tool for a rental period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		booking, err := a.product.Book(cmd.Context(), args[0], bookingDraft.start, bookingDraft.days, bookingDraft.quantity, bookingDraft.notes)
		if err != nil {
			return reported(err)
		}
		return emit(cmd.OutOrStdout(), booking, func() error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s to %s, expires %s\n", booking.ID,
				stats.FormatDate(booking.StartDate), stats.FormatDate(booking.EndDate), stats.FormatDate(booking.ExpiresAt))
			return nil
		})
	},
}

var bookingsConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Confirm a pending booking (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.bookings.Confirm(cmd.Context(), args[0]))
	},
}

var bookingCancelReason string

var bookingsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a booking (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.bookings.Cancel(cmd.Context(), args[0], bookingCancelReason))
	},
}

var bookingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a booking (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.bookings.Delete(cmd.Context(), args[0]))
	},
}

var bookingsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Expire stale pending bookings (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := a.bookings.CleanupExpired(cmd.Context())
		if err != nil {
			return reported(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), result)
		}
		return nil
	},
}

func init() {
	bookingsListCmd.Flags().StringVar(&bookingsListFlags.status, "status", "", "Only this status")
	bookingsListCmd.Flags().StringVar(&bookingsListFlags.search, "search", "", "Match booking or tool id")

	bookingsMineCmd.Flags().StringVar(&myBookingsStatus, "status", "", "Only this status")

	f := bookingsCreateCmd.Flags()
	f.StringVar(&bookingDraft.start, "start", "", "First day (yyyy-mm-dd)")
	f.IntVar(&bookingDraft.days, "days", 1, "Rental days")
	f.IntVar(&bookingDraft.quantity, "quantity", 1, "Units")
	f.StringVar(&bookingDraft.notes, "notes", "", "Notes for the booking")
	_ = bookingsCreateCmd.MarkFlagRequired("start")

	bookingsCancelCmd.Flags().StringVar(&bookingCancelReason, "reason", "", "Why the booking is cancelled")

	bookingsCmd.AddCommand(bookingsListCmd, bookingsMineCmd, bookingsCreateCmd, bookingsConfirmCmd,
		bookingsCancelCmd, bookingsDeleteCmd, bookingsCleanupCmd)
}
