package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/ingest"
)

// defaultEndpoint is the transcript service used when neither --endpoint
// nor AMPLISTACK_ENDPOINT is set; it matches the port of "serve".
const defaultEndpoint = "http://localhost:3000"

func (c *CLI) ingestCommand() *cobra.Command {
	var (
		endpoint string
		source   string
	)

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Replace the diagram with an AI reading of a transcript",
		Long: `Send a meeting transcript to the transcript service and replace the diagram
with the nodes and connections it describes. The transcript is read from
the file argument, or from stdin when it is absent or "-". On failure the
diagram is left as it was.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			transcript, err := readTranscript(args)
			if err != nil {
				return err
			}
			w, err := c.open(logger)
			if err != nil {
				return err
			}

			client := ingest.NewClient(endpoint, ingest.WithSource(source), ingest.WithLogger(logger))
			session := ingest.NewSession(client, w.State, logger)

			spin := newSpinner(cmd.Context(), os.Stderr, cmd.OutOrStdout(), "Reading transcript...")
			res, err := session.Run(cmd.Context(), transcript)
			if err := spin.finish(err, "Applied %d nodes and %d connections", len(res.Nodes), len(res.Connections)); err != nil {
				return err
			}
			if res.Notes > 0 || res.Annotations > 0 {
				printDetail("%d notes, %d connection labels", res.Notes, res.Annotations)
			}
			for _, sk := range res.Skipped {
				printWarning("Skipped %s %q: %s", sk.Kind, sk.Ref, errors.UserMessage(sk.Err))
			}
			return w.saved()
		},
	}

	env := os.Getenv("AMPLISTACK_ENDPOINT")
	if env == "" {
		env = defaultEndpoint
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", env, "transcript service base URL")
	cmd.Flags().StringVar(&source, "source", ingest.DefaultSource, "source reported to the service")
	return cmd
}

func readTranscript(args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, errors.MaxTranscriptBytes+1))
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
