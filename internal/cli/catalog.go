package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/catalog"
)

func (c *CLI) catalogCommand() *cobra.Command {
	var layerFlag string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List layers, catalog items and models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			layers := catalog.Sequence
			if layerFlag != "" {
				layer, ok := catalog.ParseLayer(layerFlag)
				if !ok {
					return fmt.Errorf("unknown layer %q", layerFlag)
				}
				layers = []catalog.Layer{layer}
			}

			var rows [][]string
			for _, layer := range layers {
				for _, n := range w.Available(layer) {
					status := ""
					if w.Has(n.ID) {
						status = iconSuccess
					}
					rows = append(rows, []string{layer.Title(), n.ID, n.Name, status})
				}
			}
			printTable([]string{"Layer", "ID", "Name", "Live"}, rows)

			if layerFlag != "" {
				return nil
			}
			printNewline()
			var models [][]string
			for _, m := range w.Rules().Models {
				active := ""
				if m.ID == w.ActiveModel() {
					active = iconSuccess
				}
				models = append(models, []string{m.ID, m.Name, strings.Join(m.Add, ", "), active})
			}
			printTable([]string{"Model", "Name", "Adds", "Active"}, models)
			return nil
		},
	}

	cmd.Flags().StringVarP(&layerFlag, "layer", "l", "", "only list one layer")
	return cmd
}
