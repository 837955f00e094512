package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/snapshot"
	"github.com/amplistack/amplistack/pkg/store"
)

// Shared store backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
)

// storeFlags selects the shared store of push and pull.
type storeFlags struct {
	backend  string
	dir      string
	redisURL string
	mongoURI string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "backend", backendFile, "shared store: file, redis or mongo")
	cmd.Flags().StringVar(&f.dir, "dir", "", "file store directory (default $XDG_DATA_HOME/amplistack/shared)")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", os.Getenv("REDIS_URL"), "redis URL")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", os.Getenv("MONGO_URI"), "MongoDB URI")
}

func (f *storeFlags) open(ctx context.Context) (store.Store, error) {
	switch f.backend {
	case backendFile:
		dir := f.dir
		if dir == "" {
			data, err := dataDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(data, "shared")
		}
		return store.NewFileStore(dir, 0)
	case backendRedis:
		if f.redisURL == "" {
			return nil, fmt.Errorf("--redis-url or REDIS_URL is required")
		}
		return store.NewRedisStore(f.redisURL, 0)
	case backendMongo:
		if f.mongoURI == "" {
			return nil, fmt.Errorf("--mongo-uri or MONGO_URI is required")
		}
		return store.NewMongoStore(ctx, store.MongoConfig{URI: f.mongoURI})
	default:
		return nil, fmt.Errorf("unknown backend %q", f.backend)
	}
}

func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Share diagrams as URLs or through a shared store",
	}
	cmd.AddCommand(c.snapshotEncodeCommand())
	cmd.AddCommand(c.snapshotDecodeCommand())
	cmd.AddCommand(c.snapshotPushCommand())
	cmd.AddCommand(c.snapshotPullCommand())
	return cmd
}

func (c *CLI) snapshotEncodeCommand() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the diagram in its compact URL form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			var out string
			if base != "" {
				out, err = snapshot.ShareURL(base, w.Snapshot())
			} else {
				out, err = snapshot.EncodeURL(w.Snapshot())
			}
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "print a share URL on this base instead of the bare payload")
	return cmd
}

func (c *CLI) snapshotDecodeCommand() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "decode <url-or-payload>",
		Short: "Load a diagram from a share URL or an encoded payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := decodeShared(args[0])
			if err != nil {
				return err
			}
			if printOnly {
				data, err := snapshot.Marshal(snap)
				if err != nil {
					return err
				}
				return writeOutput("", append(data, '\n'))
			}
			return c.restore(cmd.Context(), snap, "decoded URL")
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "print the snapshot JSON instead of loading it")
	return cmd
}

func decodeShared(arg string) (*snapshot.Snapshot, error) {
	if strings.Contains(arg, "://") {
		return snapshot.FromURL(arg)
	}
	return snapshot.DecodeURL(arg)
}

func (c *CLI) snapshotPushCommand() *cobra.Command {
	var (
		flags storeFlags
		id    string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Save the diagram to a shared store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			st, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if id == "" {
				id = store.NewID()
			}
			spin := newSpinner(cmd.Context(), os.Stderr, cmd.OutOrStdout(), "Pushing diagram...")
			err = st.Put(cmd.Context(), id, w.Snapshot())
			if err := spin.finish(err, "Pushed %s", StyleHighlight.Render(id)); err != nil {
				return err
			}
			printNextStep("Load it elsewhere", appName+" snapshot pull "+id+" --backend "+flags.backend)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "diagram id (default a new UUID)")
	return cmd
}

func (c *CLI) snapshotPullCommand() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "pull <id>",
		Short: "Replace the diagram with one from a shared store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			spin := newSpinner(cmd.Context(), os.Stderr, cmd.OutOrStdout(), "Fetching diagram...")
			snap, err := st.Get(cmd.Context(), args[0])
			if err := spin.finish(err, "Fetched %s", StyleHighlight.Render(args[0])); err != nil {
				return err
			}
			return c.restore(cmd.Context(), snap, args[0])
		},
	}

	flags.register(cmd)
	return cmd
}

// restore replaces the diagram file's content with snap.
func (c *CLI) restore(ctx context.Context, snap *snapshot.Snapshot, from string) error {
	w, err := c.open(loggerFromContext(ctx))
	if err != nil {
		return err
	}
	if err := w.Restore(snap); err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return fmt.Errorf("save diagram: %w", err)
	}
	printSuccess("Loaded %s from %s", StyleHighlight.Render(w.Title()), from)
	printDetail("%d nodes, %d custom connections", w.Len(), len(w.CustomConnections()))
	return nil
}
