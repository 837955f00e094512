package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) modelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Activate or clear an architecture model",
		Long: `Activate or clear an architecture model. A model adds its own connection
rules, can suppress global ones, and adds and removes catalog items when it
is activated.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <id>",
		Short: "Activate a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := w.SetActiveModel(args[0]); err != nil {
				return err
			}
			printSuccess("Activated %s", StyleHighlight.Render(args[0]))
			return w.saved()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Deactivate the active model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			w.ClearModel()
			printSuccess("Cleared the model")
			return w.saved()
		},
	})
	cmd.AddCommand(c.modelPickCommand())
	return cmd
}

func (c *CLI) modelPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a model interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(
				NewModelListModel(w.Rules(), w.ActiveModel()),
				tea.WithContext(cmd.Context()),
			).Run()
			if err != nil {
				return fmt.Errorf("model picker: %w", err)
			}
			picked := final.(ModelListModel).Selected
			if picked == nil {
				printInfo("No change")
				return nil
			}
			if picked.ID == "" {
				w.ClearModel()
				printSuccess("Cleared the model")
				return w.saved()
			}
			if err := w.SetActiveModel(picked.ID); err != nil {
				return err
			}
			printSuccess("Activated %s", StyleHighlight.Render(picked.Name))
			return w.saved()
		},
	}
}
