package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/forms"
	"taskboard/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Manage workflow statuses (admin)",
}

var statusCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin); err != nil {
			return err
		}

		editor := forms.NewStatusEditor(theApp.api, nil)
		fillStatusForm(cmd, &editor.Form)

		fieldErrs, err := editor.Submit(cmd.Context())
		if err != nil {
			return fail(err)
		}
		if len(fieldErrs) > 0 {
			printFieldErrors(fieldErrs)
			return fmt.Errorf("status not created")
		}
		fmt.Println("Status created successfully")
		return nil
	},
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List statuses in board order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}
		statuses, err := theApp.api.Statuses(cmd.Context())
		if err != nil {
			return fail(err)
		}
		for _, s := range statuses {
			fmt.Printf("%s  %s (order %d)\n", s.ID, s.Name, s.OrderValue())
		}
		return nil
	},
}

var statusUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin); err != nil {
			return err
		}

		status, err := theApp.api.StatusByID(cmd.Context(), args[0])
		if err != nil {
			return fail(err)
		}

		editor := forms.NewStatusEditor(theApp.api, status)
		fillStatusForm(cmd, &editor.Form)

		fieldErrs, err := editor.Submit(cmd.Context())
		if err != nil {
			return fail(err)
		}
		if len(fieldErrs) > 0 {
			printFieldErrors(fieldErrs)
			return fmt.Errorf("status not updated")
		}
		fmt.Println("Status updated successfully")
		return nil
	},
}

var statusDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin); err != nil {
			return err
		}
		if !confirm(fmt.Sprintf("Delete status %s?", args[0])) {
			fmt.Println("Cancelled")
			return nil
		}
		if err := theApp.api.DeleteStatus(cmd.Context(), args[0]); err != nil {
			return fail(err)
		}
		fmt.Println("Status deleted")
		return nil
	},
}

func fillStatusForm(cmd *cobra.Command, f *forms.StatusForm) {
	if cmd.Flags().Changed("name") {
		f.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("order") {
		order, _ := cmd.Flags().GetInt("order")
		f.Order = &order
	}
}

func addStatusFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "status name")
	cmd.Flags().Int("order", 0, "display order")
}

func init() {
	addStatusFormFlags(statusCreateCmd)
	addStatusFormFlags(statusUpdateCmd)

	statusCmd.AddCommand(statusCreateCmd)
	statusCmd.AddCommand(statusListCmd)
	statusCmd.AddCommand(statusUpdateCmd)
	statusCmd.AddCommand(statusDeleteCmd)
	rootCmd.AddCommand(statusCmd)
}
