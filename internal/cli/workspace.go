package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/rules"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

// workspace is the diagram of one invocation together with its file.
// Every mutation writes the file through the diagram's persister; the last
// write error is kept so commands can report it.
type workspace struct {
	*diagram.State
	path string
	err  error
}

// open loads the diagram file, or starts an empty diagram when the file
// does not exist yet.
func (c *CLI) open(logger *log.Logger) (*workspace, error) {
	path, err := c.stateFile()
	if err != nil {
		return nil, fmt.Errorf("locate diagram file: %w", err)
	}
	set := rules.Default()
	if c.rulesPath != "" {
		if set, err = rules.LoadFile(c.rulesPath); err != nil {
			return nil, err
		}
	}

	w := &workspace{path: path}
	w.State = diagram.New(
		diagram.WithLogger(logger),
		diagram.WithRules(set),
		diagram.WithPersister(diagram.PersisterFunc(w.write)),
	)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("new diagram", "path", path)
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	snap, err := snapshot.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := w.Restore(snap); err != nil {
		return nil, err
	}
	logger.Debug("loaded diagram", "path", path, "nodes", w.Len())
	return w, nil
}

func (w *workspace) write(snap *snapshot.Snapshot) error {
	data, err := snapshot.Marshal(snap)
	if err != nil {
		w.err = err
		return err
	}
	w.err = writeFileAtomic(w.path, data)
	return w.err
}

// save writes the current diagram, for changes made through Restore.
func (w *workspace) save() error {
	return w.write(w.Snapshot())
}

// saved reports the error of the last write, if any.
func (w *workspace) saved() error {
	if w.err != nil {
		return fmt.Errorf("save diagram: %w", w.err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".diagram-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
