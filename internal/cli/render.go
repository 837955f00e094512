package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/export"
	"github.com/amplistack/amplistack/pkg/geometry"
	"github.com/amplistack/amplistack/pkg/render"
)

// Output formats of the render command.
const (
	formatSVG  = "svg"
	formatJSON = "json"
)

func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		format   string
		noPanels bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the diagram's connections as SVG or JSON",
		Long: `Render the diagram's connections. SVG output includes layer and node
panels unless --no-panels is given, which leaves only the connection overlay
the editor draws above its own node elements.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w, err := c.open(logger)
			if err != nil {
				return err
			}
			prog := newProgress(logger)
			scene, frame := buildScene(cmd.Context(), w, logger)

			var data []byte
			switch format {
			case formatSVG:
				opts := []render.SVGOption{render.WithTitle(w.Title())}
				if !noPanels {
					opts = append(opts, render.WithPanels(panels(w, frame)...))
				}
				data = render.RenderSVG(scene, opts...)
			case formatJSON:
				data, err = render.RenderJSON(scene,
					render.WithJSONTitle(w.Title()),
					render.WithJSONModel(w.ActiveModel()),
				)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatSVG, formatJSON)
			}
			prog.done("Rendered %d connections", len(scene.Connections))
			return writeOutput(output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg or json")
	cmd.Flags().BoolVar(&noPanels, "no-panels", false, "omit layer and node panels")
	return cmd
}

// panels returns the layer boxes followed by the node boxes of frame.
func panels(w *workspace, frame *geometry.Frame) []render.Panel {
	var out []render.Panel
	for _, layer := range catalog.Sequence {
		if box, ok := frame.LayerBox(layer); ok {
			out = append(out, render.Panel{ID: string(layer), Title: layer.Title(), Box: box, Layer: true})
		}
	}
	for _, p := range w.LiveNodes() {
		box, ok := frame.NodeBox(p.ID)
		if !ok {
			continue
		}
		n, _ := w.Node(p.ID)
		out = append(out, render.Panel{ID: p.ID, Title: n.Name, Box: box})
	}
	return out
}

func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the diagram as a Graphviz node-link graph",
	}

	dot := &cobra.Command{
		Use:   "dot",
		Short: "Write Graphviz DOT source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w, err := c.open(logger)
			if err != nil {
				return err
			}
			scene, _ := buildScene(cmd.Context(), w, logger)
			return writeOutput(output, []byte(export.ToDOT(w.State, scene, export.Options{Detailed: detailed})))
		},
	}

	svg := &cobra.Command{
		Use:   "svg",
		Short: "Lay the graph out with Graphviz and write SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w, err := c.open(logger)
			if err != nil {
				return err
			}
			prog := newProgress(logger)
			scene, _ := buildScene(cmd.Context(), w, logger)
			data, err := export.RenderSVG(cmd.Context(), export.ToDOT(w.State, scene, export.Options{Detailed: detailed}))
			if err != nil {
				return err
			}
			prog.done("Laid out %d nodes", w.Len())
			return writeOutput(output, data)
		},
	}

	for _, sub := range []*cobra.Command{dot, svg} {
		sub.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
		sub.Flags().BoolVar(&detailed, "detailed", false, "add slots and notes to node labels")
		cmd.AddCommand(sub)
	}
	return cmd
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote %s", StyleHighlight.Render(path))
	return nil
}
