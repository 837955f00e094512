package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amplistack/amplistack/pkg/buildinfo"
)

const (
	// appName is the application name used for directories and display.
	appName = "amplistack"

	// stateFileName is the default diagram file inside the data directory.
	stateFileName = "diagram.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	statePath string
	rulesPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Amplistack edits layered architecture diagrams",
		Long: `Amplistack builds architecture diagrams of a customer data stack: five
layers from marketing channels to activation tools, connected automatically
by rules, with optional models, custom connections and AI transcript ingestion.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.statePath, "state", "", "diagram file (default $XDG_DATA_HOME/amplistack/diagram.json)")
	root.PersistentFlags().StringVar(&c.rulesPath, "rules", "", "TOML file replacing the built-in rules and models")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.entryCommand())
	root.AddCommand(c.connCommand())
	root.AddCommand(c.modelCommand())
	root.AddCommand(c.titleCommand())
	root.AddCommand(c.badgeCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.ingestCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// dataDir returns the data directory using XDG standard (~/.local/share/amplistack/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// stateFile returns the diagram file of this invocation.
func (c *CLI) stateFile() (string, error) {
	if c.statePath != "" {
		return c.statePath, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stateFileName), nil
}
