package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/config"
	"github.com/ziadkadry99/slidepack/internal/db"
	"github.com/ziadkadry99/slidepack/internal/deck"
	"github.com/ziadkadry99/slidepack/internal/logging"
	"github.com/ziadkadry99/slidepack/internal/model"
	"github.com/ziadkadry99/slidepack/internal/progress"
)

// env bundles what every command needs once the config is loaded.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// setup loads the config and builds the logger. --verbose forces debug
// logging.
func setup() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, string(cfg.LogFormat))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) deckOptions() deck.Options {
	return deck.Options{
		Logger:       e.logger,
		Include:      e.cfg.Include,
		Exclude:      e.cfg.Exclude,
		MaxEntrySize: e.cfg.MaxEntryBytes,
	}
}

func (e *env) load(ctx context.Context, src string) (*model.Project, error) {
	p, err := deck.Load(ctx, src, e.deckOptions())
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", src, err)
	}
	return p, nil
}

// write renders p in the given mode with a progress display and writes it
// to output.
func (e *env) write(ctx context.Context, p *model.Project, mode archive.Mode, output string) ([]byte, error) {
	label := "Packing " + p.Name
	if mode == archive.ModeStandalone {
		label = "Exporting " + p.Name
	}
	w := archive.NewWriter(
		archive.WithLogger(e.logger),
		archive.WithProgress(progress.Callback(progress.NewReporter(label))),
	)
	data, err := w.Write(ctx, p, mode)
	if err != nil {
		return nil, err
	}
	if err := deck.WriteFile(output, data); err != nil {
		return nil, err
	}
	return data, nil
}

// record adds a history entry when history is enabled. It returns the
// previous entry for the same operation and source when that one was built
// from an identical deck. History problems are logged and never fail the
// command.
func (e *env) record(ctx context.Context, entry catalog.Entry) *catalog.Entry {
	if !e.cfg.History.Enabled {
		return nil
	}
	database, err := db.Open(e.cfg.HistoryPath())
	if err != nil {
		e.logger.Warn("opening history database failed", zap.Error(err))
		return nil
	}
	defer database.Close()

	store := catalog.NewStore(database)
	var unchanged *catalog.Entry
	if entry.SourceDigest != "" {
		prev, err := store.Previous(ctx, entry)
		switch {
		case err == nil && prev.SourceDigest == entry.SourceDigest:
			unchanged = prev
		case err != nil && !errors.Is(err, catalog.ErrNotFound):
			e.logger.Warn("reading previous history entry failed", zap.Error(err))
		}
	}
	if _, err := store.Record(ctx, entry); err != nil {
		e.logger.Warn("recording history entry failed", zap.Error(err))
	}
	return unchanged
}

// reportUnchanged notes that the deck is identical to the one an earlier run
// of the same command used.
func reportUnchanged(w io.Writer, prev *catalog.Entry) {
	if prev == nil {
		return
	}
	fmt.Fprintf(w, "Deck unchanged since %s (digest %s)\n",
		prev.Timestamp.Local().Format(time.DateTime), shortDigest(prev.SourceDigest))
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

// defaultOutput names an archive under the configured output directory.
func (e *env) defaultOutput(name, suffix string) string {
	base := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if base == "" {
		base = "presentation"
	}
	return filepath.Join(e.cfg.OutputDir, base+suffix+".zip")
}

// editInPlace loads an editable archive, applies fn and saves it back.
func editInPlace(ctx context.Context, path string, fn func(p *model.Project) (*model.Project, error)) (*model.Project, error) {
	e, err := setup()
	if err != nil {
		return nil, err
	}
	defer e.logger.Sync()

	if !deck.IsArchive(path) {
		return nil, fmt.Errorf("%s: expected a .zip deck package", path)
	}
	p, err := e.load(ctx, path)
	if err != nil {
		return nil, err
	}
	p, err = fn(p)
	if err != nil {
		return nil, err
	}
	p = model.SyncManifest(p)

	data, err := e.write(ctx, p, archive.ModeEditable, path)
	if err != nil {
		return nil, err
	}
	e.record(ctx, catalog.EntryFor(catalog.OpEdit, p, path, path, len(data)))
	return p, nil
}
