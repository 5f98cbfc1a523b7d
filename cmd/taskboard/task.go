package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/forms"
	"taskboard/internal/model"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}
		viewer, _ := theApp.sess.User()

		editor := forms.NewTaskEditor(theApp.api, viewer, nil)
		fillTaskForm(cmd, &editor.Form)

		fieldErrs, err := editor.Submit(cmd.Context())
		if err != nil {
			return fail(err)
		}
		if len(fieldErrs) > 0 {
			printFieldErrors(fieldErrs)
			return fmt.Errorf("task not created")
		}
		fmt.Println("Task created successfully")
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		search, _ := cmd.Flags().GetString("search")
		if cmd.Flags().Changed("page") || search != "" {
			pageSize, _ := cmd.Flags().GetInt("page-size")
			res, err := theApp.api.TaskPagination(cmd.Context(), api.PageQuery{
				Page:     page,
				PageSize: pageSize,
				Search:   search,
			})
			if err != nil {
				return fail(err)
			}
			for _, t := range res.Tasks {
				printTask(t)
			}
			fmt.Printf("Page %d (%d records total)\n", page, res.TotalRecords)
			return nil
		}

		tasks, err := theApp.api.Tasks(cmd.Context())
		if err != nil {
			return fail(err)
		}
		for _, t := range tasks {
			printTask(t)
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}
		task, err := theApp.api.TaskByID(cmd.Context(), args[0])
		if err != nil {
			return fail(err)
		}

		fmt.Printf("%s  %s\n", task.ID, task.Title)
		if task.Description != "" {
			fmt.Printf("  %s\n", task.Description)
		}
		fmt.Printf("  priority: %s  status: %s", task.Priority, statusLabel(*task))
		if assignee := task.AssigneeLabel(); assignee != "" {
			fmt.Printf("  assignee: %s", assignee)
		}
		if task.DueDate != "" {
			fmt.Printf("  due: %s", task.DueDate)
		}
		fmt.Println()
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}
		viewer, _ := theApp.sess.User()

		task, err := theApp.api.TaskByID(cmd.Context(), args[0])
		if err != nil {
			return fail(err)
		}

		editor := forms.NewTaskEditor(theApp.api, viewer, task)
		fillTaskForm(cmd, &editor.Form)

		fieldErrs, err := editor.Submit(cmd.Context())
		if err != nil {
			return fail(err)
		}
		if len(fieldErrs) > 0 {
			printFieldErrors(fieldErrs)
			return fmt.Errorf("task not updated")
		}
		fmt.Println("Task updated successfully")
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}
		if !confirm(fmt.Sprintf("Delete task %s?", args[0])) {
			fmt.Println("Cancelled")
			return nil
		}
		if err := theApp.api.DeleteTask(cmd.Context(), args[0]); err != nil {
			return fail(err)
		}
		fmt.Println("Task deleted")
		return nil
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <status-id>",
	Short: "Move a task to another status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}

		b := board.New(theApp.api, theApp.st, theApp.log)
		if err := b.LoadData(cmd.Context()); err != nil {
			return fail(err)
		}
		moved, err := b.MoveTask(cmd.Context(), args[0], args[1])
		if err != nil {
			return fail(err)
		}
		if !moved {
			fmt.Println("Task already has that status")
			return nil
		}
		fmt.Println("Task moved")
		return nil
	},
}

// fillTaskForm overlays form fields from flags that were explicitly set, so
// updates keep the prefilled values for everything else.
func fillTaskForm(cmd *cobra.Command, f *forms.TaskForm) {
	if cmd.Flags().Changed("title") {
		f.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("description") {
		f.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("due") {
		f.DueDate, _ = cmd.Flags().GetString("due")
	}
	if cmd.Flags().Changed("priority") {
		f.Priority, _ = cmd.Flags().GetString("priority")
	}
	if cmd.Flags().Changed("status") {
		f.Status, _ = cmd.Flags().GetString("status")
	}
	if cmd.Flags().Changed("assignee") {
		f.Assignee, _ = cmd.Flags().GetString("assignee")
	}
}

func printFieldErrors(fieldErrs forms.FieldErrors) {
	for field, msg := range fieldErrs {
		fmt.Printf("  %s: %s\n", field, msg)
	}
}

func printTask(t model.Task) {
	line := fmt.Sprintf("%s  [%s] %s", t.ID, t.Priority, t.Title)
	if assignee := t.AssigneeLabel(); assignee != "" {
		line += "  @" + assignee
	}
	line += "  (" + statusLabel(t) + ")"
	fmt.Println(line)
}

func statusLabel(t model.Task) string {
	if s, ok := t.Status.Obj(); ok && s.Name != "" {
		return s.Name
	}
	return t.StatusID()
}

func addTaskFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "task title")
	cmd.Flags().String("description", "", "task description")
	cmd.Flags().String("due", "", "due date (ISO timestamp)")
	cmd.Flags().String("priority", "", "low, medium or high")
	cmd.Flags().String("status", "", "status id")
	cmd.Flags().String("assignee", "", "assignee user id")
}

func init() {
	addTaskFormFlags(taskCreateCmd)
	addTaskFormFlags(taskUpdateCmd)

	taskListCmd.Flags().Int("page", 1, "page number")
	taskListCmd.Flags().Int("page-size", 10, "page size")
	taskListCmd.Flags().String("search", "", "search text")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskMoveCmd)
	rootCmd.AddCommand(taskCmd)
}
