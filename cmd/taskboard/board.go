package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskboard/internal/board"
	"taskboard/internal/model"
	"taskboard/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive Kanban board",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.gate(model.RoleAdmin, model.RoleUser); err != nil {
			return err
		}

		b := board.New(theApp.api, theApp.st, theApp.log)
		m := tui.New(b, theApp.sess, theApp.api)

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("board: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
