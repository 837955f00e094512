package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/geometry"
)

func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, remove, move and annotate diagram nodes",
	}
	cmd.AddCommand(c.nodeAddCommand())
	cmd.AddCommand(c.nodeRemoveCommand())
	cmd.AddCommand(c.nodeMoveCommand())
	cmd.AddCommand(c.nodeNoteCommand())
	cmd.AddCommand(c.nodeListCommand())
	return cmd
}

func (c *CLI) nodeAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>...",
		Short: "Add catalog items or custom entries to the diagram",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			for _, id := range args {
				if w.Has(id) {
					printInfo("%s is already in the diagram", StyleHighlight.Render(id))
					continue
				}
				if err := w.AddItem(id); err != nil {
					return err
				}
				printSuccess("Added %s", StyleHighlight.Render(id))
			}
			return w.saved()
		},
	}
}

func (c *CLI) nodeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove nodes and the custom connections touching them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := w.RemoveItem(id); err != nil {
					return err
				}
				printSuccess("Removed %s", StyleHighlight.Render(id))
			}
			return w.saved()
		},
	}
}

func (c *CLI) nodeMoveCommand() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "move <id> [slot]",
		Short: "Move a node to a slot of its layer, or to the slot under --x/--y",
		Long: `Move a node within its layer. Slots are numbered row by row, six per row.
With --x and --y the slot under that canvas position is used, the way a
drop on the editor canvas picks it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			id := args[0]
			if len(args) == 2 {
				slot, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid slot %q", args[1])
				}
				slot, err = w.MoveToSlot(id, slot)
				if err != nil {
					return err
				}
				printSuccess("Moved %s to slot %d", StyleHighlight.Render(id), slot)
				return w.saved()
			}
			if !cmd.Flags().Changed("x") || !cmd.Flags().Changed("y") {
				return fmt.Errorf("give a slot or both --x and --y")
			}
			n, ok := w.Node(id)
			if !ok {
				return fmt.Errorf("node %q is not in the diagram", id)
			}
			frame := geometry.Build(w.LiveNodes(), geometry.DefaultConfig())
			content, _ := frame.ContentBox(n.Layer)
			slot, err := w.Drop(id, n.Layer, content, x, y)
			if err != nil {
				return err
			}
			printSuccess("Moved %s to slot %d", StyleHighlight.Render(id), slot)
			return w.saved()
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "canvas x position")
	cmd.Flags().Float64Var(&y, "y", 0, "canvas y position")
	return cmd
}

func (c *CLI) nodeNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> [text...]",
		Short: "Set the note of a node; without text the note is removed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := w.SetNote(args[0], text); err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				printSuccess("Removed note of %s", StyleHighlight.Render(args[0]))
			} else {
				printSuccess("Noted %s", StyleHighlight.Render(args[0]))
			}
			return w.saved()
		},
	}
}

func (c *CLI) nodeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List live nodes in layer and slot order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			var rows [][]string
			for _, p := range w.LiveNodes() {
				n, _ := w.Node(p.ID)
				rows = append(rows, []string{
					p.Layer.Title(), strconv.Itoa(p.Slot), p.ID, n.Name, w.Note(p.ID),
				})
			}
			if len(rows) == 0 {
				printInfo("The diagram is empty")
				return nil
			}
			printTable([]string{"Layer", "Slot", "ID", "Name", "Note"}, rows)
			return nil
		},
	}
}

func (c *CLI) entryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage custom catalog entries",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <layer> <name...>",
		Short: "Register a custom entry and add it to the diagram",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			layer, ok := catalog.ParseLayer(args[0])
			if !ok {
				return fmt.Errorf("unknown layer %q", args[0])
			}
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			e, err := w.AddCustomEntry(layer, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if err := w.AddItem(e.ID); err != nil {
				return err
			}
			printSuccess("Added %s as %s", e.Name, StyleHighlight.Render(e.ID))
			return w.saved()
		},
	})
	return cmd
}

func (c *CLI) titleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "title [text...]",
		Short: "Show or set the diagram title",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if len(args) == 0 {
				printKeyValue("Title", w.Title())
				if t := w.LastEditedAt(); !t.IsZero() {
					printKeyValue("Edited", t.Local().Format("Jan 2, 2006 15:04"))
				}
				return nil
			}
			w.SetTitle(strings.Join(args, " "))
			printSuccess("Renamed to %s", StyleHighlight.Render(w.Title()))
			return w.saved()
		},
	}
}

func (c *CLI) badgeCommand() *cobra.Command {
	ids := make([]string, len(catalog.Badges))
	for i, b := range catalog.Badges {
		ids[i] = b.ID
	}
	return &cobra.Command{
		Use:       "badge <" + strings.Join(ids, "|") + ">",
		Short:     "Toggle an Amplitude SDK badge",
		ValidArgs: ids,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			on, err := w.ToggleBadge(args[0])
			if err != nil {
				return err
			}
			state := "off"
			if on {
				state = "on"
			}
			printSuccess("Badge %s %s", StyleHighlight.Render(args[0]), state)
			return w.saved()
		},
	}
}

func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			w.Clear()
			printSuccess("Cleared the diagram")
			return w.saved()
		},
	}
}
