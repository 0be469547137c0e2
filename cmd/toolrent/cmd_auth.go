package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"toolrent-console/internal/domain"
	"toolrent-console/internal/session"
)

var (
	loginPassword string
	register      domain.RegisterRequest
)

// readPassword takes the password from the flag, then TOOLRENT_PASSWORD, then
// an interactive prompt
func readPassword(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("TOOLRENT_PASSWORD"); env != "" {
		return env, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.New("no password given")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and remember the credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := readPassword(cmd, loginPassword)
		if err != nil {
			return err
		}
		user, err := a.session.Login(cmd.Context(), args[0], pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.FullName(), user.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and sign in with it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := readPassword(cmd, register.Password)
		if err != nil {
			return err
		}
		req := register
		req.Email = args[0]
		req.Password = pw
		user, err := a.session.Register(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", user.FullName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.profile.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := a.session.User()
		if user == nil {
			return session.ErrNotAuthenticated
		}
		return emit(cmd.OutOrStdout(), user, func() error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\nrole: %s\n", user.FullName(), user.Email, user.Role)
			if claims, err := a.store.Claims(); err == nil && claims.ExpiresAt != nil {
				fmt.Fprintf(out, "credential expires: %s\n", claims.ExpiresAt.Time.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (default: $TOOLRENT_PASSWORD or prompt)")

	f := registerCmd.Flags()
	f.StringVar(&register.FirstName, "first-name", "", "First name")
	f.StringVar(&register.LastName, "last-name", "", "Last name")
	f.StringVar(&register.Phone, "phone", "", "Phone number")
	f.StringVar(&register.Company, "company", "", "Company")
	f.StringVar(&register.Password, "password", "", "Password (default: $TOOLRENT_PASSWORD or prompt)")
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")
}
