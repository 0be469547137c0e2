package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolrent-console/internal/domain"
	"toolrent-console/internal/stats"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile, orders and bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.profile.Load(cmd.Context())
		if view.User.ID == "" {
			return err
		}
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			out := cmd.OutOrStdout()
			u := view.User
			fmt.Fprintf(out, "%s <%s> %s\n", u.FullName(), u.Email, u.Phone)
			if u.Company != "" || u.Address != "" {
				fmt.Fprintf(out, "%s %s\n", u.Company, u.Address)
			}
			fmt.Fprintln(out, "\nOrders")
			rows := make([][]string, 0, len(view.Orders))
			for _, o := range view.Orders {
				rows = append(rows, []string{o.OrderNumber, stats.FormatDate(o.StartDate), stats.FormatDate(o.EndDate), money(o.Total), string(o.Status)})
			}
			if err := table(out, []string{"ORDER", "START", "END", "TOTAL", "STATUS"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nBookings")
			return bookingTable(out, view.Bookings)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var profileUpdate struct {
	firstName, lastName, email, phone, company, address string
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change profile fields; only the flags given are sent",
	RunE: func(cmd *cobra.Command, args []string) error {
		var update domain.ProfileUpdate
		flags := cmd.Flags()
		set := func(name string, v string, dst **string) {
			if flags.Changed(name) {
				*dst = &v
			}
		}
		set("first-name", profileUpdate.firstName, &update.FirstName)
		set("last-name", profileUpdate.lastName, &update.LastName)
		set("email", profileUpdate.email, &update.Email)
		set("phone", profileUpdate.phone, &update.Phone)
		set("company", profileUpdate.company, &update.Company)
		set("address", profileUpdate.address, &update.Address)
		if update.IsEmpty() {
			return fmt.Errorf("nothing to update")
		}
		_, err := a.profile.Update(cmd.Context(), update)
		return reported(err)
	},
}

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&profileUpdate.firstName, "first-name", "", "First name")
	f.StringVar(&profileUpdate.lastName, "last-name", "", "Last name")
	f.StringVar(&profileUpdate.email, "email", "", "Email")
	f.StringVar(&profileUpdate.phone, "phone", "", "Phone number")
	f.StringVar(&profileUpdate.company, "company", "", "Company")
	f.StringVar(&profileUpdate.address, "address", "", "Address")
	profileCmd.AddCommand(profileUpdateCmd)
}
