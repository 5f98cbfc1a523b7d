package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/api"
	"taskboard/internal/model"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin); err != nil {
			return err
		}
		users, err := theApp.api.Users(cmd.Context())
		if err != nil {
			return fail(err)
		}
		for _, u := range users {
			fmt.Printf("%s  %s  %s (%s)\n", u.ID, u.DisplayName(), u.Email, u.RoleName())
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a user (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin); err != nil {
			return err
		}
		u, err := theApp.api.UserByID(cmd.Context(), args[0])
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s  %s\n", u.ID, u.DisplayName())
		fmt.Printf("  email: %s  mobile: %s  role: %s\n", u.Email, u.Mobile, u.RoleName())
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a profile (own by default; any user for admins)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}
		viewer, _ := theApp.sess.User()

		id := viewer.ID
		if len(args) == 1 {
			if err := theApp.gate(model.RoleAdmin); err != nil {
				return err
			}
			id = args[0]
		}

		req := api.UpdateUserRequest{ID: id}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Mobile, _ = cmd.Flags().GetString("mobile")
		req.Email, _ = cmd.Flags().GetString("email")

		updated, err := theApp.api.UpdateUser(cmd.Context(), req)
		if err != nil {
			return fail(err)
		}

		// Editing your own profile refreshes the cached identity without
		// touching token or expiry.
		if updated.ID == viewer.ID {
			if err := theApp.sess.UpdateUserData(*updated); err != nil {
				return err
			}
		}
		fmt.Println("Profile updated")
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin); err != nil {
			return err
		}
		if !confirm(fmt.Sprintf("Delete user %s?", args[0])) {
			fmt.Println("Cancelled")
			return nil
		}
		if err := theApp.api.DeleteUser(cmd.Context(), args[0]); err != nil {
			return fail(err)
		}
		fmt.Println("User deleted")
		return nil
	},
}

func init() {
	userUpdateCmd.Flags().String("first-name", "", "first name")
	userUpdateCmd.Flags().String("last-name", "", "last name")
	userUpdateCmd.Flags().String("mobile", "", "mobile number")
	userUpdateCmd.Flags().String("email", "", "account email")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
