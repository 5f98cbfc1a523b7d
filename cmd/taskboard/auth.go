package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("both --email and --password are required")
		}

		res, err := theApp.api.Login(cmd.Context(), api.LoginRequest{Email: email, Password: password})
		if err != nil {
			return fail(err)
		}

		// Role arrives as a plain name or a nested object; either way the
		// session stores the name.
		role := res.User.RoleName()
		if err := theApp.sess.Login(res.User, res.Token, role); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s), session expires at %s\n",
			res.User.DisplayName(), role, theApp.sess.ExpiresAt().Local().Format("15:04"))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.sess.Logout()
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := api.RegisterRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Mobile, _ = cmd.Flags().GetString("mobile")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		if req.FirstName == "" || req.Email == "" || req.Password == "" {
			return fmt.Errorf("--first-name, --email and --password are required")
		}

		if picture, _ := cmd.Flags().GetString("picture"); picture != "" {
			raw, err := os.ReadFile(picture)
			if err != nil {
				return fmt.Errorf("read picture: %w", err)
			}
			req.ProfilePicture = base64.StdEncoding.EncodeToString(raw)
		}

		user, err := theApp.api.Register(cmd.Context(), req)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("Registered %s; run 'taskboard login' to sign in\n", user.DisplayName())
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, ok := theApp.sess.User()
		if !ok {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s (%s)\n", user.DisplayName(), theApp.sess.Role())
		fmt.Printf("Session expires at %s\n", theApp.sess.ExpiresAt().Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("mobile", "", "mobile number")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("picture", "", "path to a profile image")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
}
