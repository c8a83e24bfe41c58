package cli

import (
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session commands",
	}

	authCmd.AddCommand(newRegisterCmd())
	authCmd.AddCommand(newLoginCmd())
	authCmd.AddCommand(newMeCmd())
	authCmd.AddCommand(newLogoutCmd())

	return authCmd
}

type registerFlags struct {
	role     string
	email    string
	username string
	password string

	firstName string
	lastName  string
	school    string
	degree    string

	companyName string
	sector      string
	website     string
	contact     string

	schoolName string
	city       string
}

func newRegisterCmd() *cobra.Command {
	var flags registerFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"role":     flags.role,
				"email":    flags.email,
				"username": flags.username,
				"password": flags.password,
			}

			switch flags.role {
			case "STUDENT":
				body["student"] = map[string]string{
					"first_name": flags.firstName,
					"last_name":  flags.lastName,
					"school":     flags.school,
					"degree":     flags.degree,
				}
			case "COMPANY":
				body["company"] = map[string]string{
					"company_name": flags.companyName,
					"sector":       flags.sector,
					"website":      flags.website,
					"contact_name": flags.contact,
				}
			case "SCHOOL":
				body["school"] = map[string]string{
					"school_name":  flags.schoolName,
					"city":         flags.city,
					"contact_name": flags.contact,
				}
			}

			var result AuthResult
			if err := client.Post("/api/v1/auth/register", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			if err := cfg.SaveSession(client.Session()); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.role, "role", "", "Account role: STUDENT, COMPANY or SCHOOL")
	cmd.Flags().StringVar(&flags.email, "email", "", "Email address")
	cmd.Flags().StringVar(&flags.username, "username", "", "Username")
	cmd.Flags().StringVar(&flags.password, "password", "", "Password")

	cmd.Flags().StringVar(&flags.firstName, "first-name", "", "Student first name")
	cmd.Flags().StringVar(&flags.lastName, "last-name", "", "Student last name")
	cmd.Flags().StringVar(&flags.school, "school", "", "Student school")
	cmd.Flags().StringVar(&flags.degree, "degree", "", "Student degree")

	cmd.Flags().StringVar(&flags.companyName, "company-name", "", "Company name")
	cmd.Flags().StringVar(&flags.sector, "sector", "", "Company sector")
	cmd.Flags().StringVar(&flags.website, "website", "", "Company website")
	cmd.Flags().StringVar(&flags.contact, "contact", "", "Contact name")

	cmd.Flags().StringVar(&flags.schoolName, "school-name", "", "School name")
	cmd.Flags().StringVar(&flags.city, "city", "", "School city")

	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"email":    email,
				"password": password,
			}

			var result AuthResult
			if err := client.Post("/api/v1/auth/login", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			if err := cfg.SaveSession(client.Session()); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result User
			if err := client.Get("/api/v1/auth/me", &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Post("/api/v1/auth/logout", nil, nil); err != nil {
				out.PrintError(err)
				return err
			}

			if err := cfg.ClearSession(); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Logged out")
			return nil
		},
	}
}
