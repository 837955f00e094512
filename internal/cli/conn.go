package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/geometry"
	"github.com/amplistack/amplistack/pkg/render"
)

func (c *CLI) connCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conn",
		Aliases: []string{"connection"},
		Short:   "Manage connections",
		Long: `Manage connections. Rule connections appear automatically between live
nodes; custom connections are drawn by hand. Keys are shown by "conn list".`,
	}
	cmd.AddCommand(c.connAddCommand())
	cmd.AddCommand(c.connKeyCommand("rm <key>", "Remove a custom connection", func(w *workspace, key, _ string) (string, error) {
		return "Removed", w.RemoveCustomConnection(key)
	}))
	cmd.AddCommand(c.connKeyCommand("dismiss <key>", "Hide a rule connection until the diagram is cleared", func(w *workspace, key, _ string) (string, error) {
		return "Dismissed", w.Dismiss(key)
	}))
	cmd.AddCommand(c.connKeyCommand("dotted <key>", "Toggle the dotted style of a connection", func(w *workspace, key, _ string) (string, error) {
		if err := w.ApplyMenu(key, diagram.MenuDotted, ""); err != nil {
			return "", err
		}
		if w.IsDotted(key) {
			return "Dotted", nil
		}
		return "Solid", nil
	}))
	cmd.AddCommand(c.connKeyCommand("annotate <key> [text...]", "Label a connection; without text the label is removed", func(w *workspace, key, text string) (string, error) {
		return "Annotated", w.ApplyMenu(key, diagram.MenuAnnotate, text)
	}))
	cmd.AddCommand(c.connListCommand())
	return cmd
}

func (c *CLI) connAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <source> <target>",
		Short: "Draw a custom connection between two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == args[1] {
				return fmt.Errorf("a connection needs two distinct nodes")
			}
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := w.StartConnection(args[0]); err != nil {
				return err
			}
			key, err := w.ClickNode(args[1])
			if err != nil {
				return err
			}
			printSuccess("Connected %s", StyleHighlight.Render(key))
			return w.saved()
		},
	}
}

// connKeyCommand builds a subcommand taking a connection key and optional
// trailing text.
func (c *CLI) connKeyCommand(use, short string, apply func(w *workspace, key, text string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			verb, err := apply(w, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printSuccess("%s %s", verb, StyleHighlight.Render(args[0]))
			return w.saved()
		},
	}
}

func (c *CLI) connListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the rendered connections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w, err := c.open(logger)
			if err != nil {
				return err
			}
			scene, _ := buildScene(cmd.Context(), w, logger)

			var rows [][]string
			for _, conn := range scene.Connections {
				style := "solid"
				if conn.Dotted {
					style = "dotted"
				}
				label := ""
				if l, ok := scene.Label(conn.Key); ok {
					label = strings.Join(l.Lines, " ")
				}
				rows = append(rows, []string{conn.Key, string(conn.Kind), style, label})
			}
			if all {
				for _, key := range w.Dismissed() {
					rows = append(rows, []string{key, "dismissed", "", ""})
				}
			}
			if len(rows) == 0 {
				printInfo("No connections")
				return nil
			}
			printTable([]string{"Key", "Kind", "Style", "Label"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include dismissed rule connections")
	return cmd
}

// buildScene lays out the workspace and renders its connection scene.
func buildScene(ctx context.Context, w *workspace, logger *log.Logger) (render.Scene, *geometry.Frame) {
	frame := geometry.Build(w.LiveNodes(), geometry.DefaultConfig())
	scene := render.New(render.WithLogger(logger)).Render(ctx, w, frame)
	return scene, frame
}
