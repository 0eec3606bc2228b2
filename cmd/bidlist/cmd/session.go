package cmd

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bidlist"
	"github.com/shunichi-ikebuchi/bidlist/pkg/config"
	"github.com/shunichi-ikebuchi/bidlist/pkg/csvsource"
	"github.com/shunichi-ikebuchi/bidlist/pkg/db"
	"github.com/shunichi-ikebuchi/bidlist/pkg/menu"
	"github.com/shunichi-ikebuchi/bidlist/pkg/pathutil"
)

// metadataLastCSV stores the most recently used CSV path in the history database.
const metadataLastCSV = "last_csv_path"

// session bundles what every list-backed command needs.
type session struct {
	cfg      *config.Config
	paths    *pathutil.PathResolver
	list     *bidlist.Guarded
	recorder db.Recorder
	menu     *menu.Menu
	runID    string
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	if csvPath != "" {
		cfg.CSV.Path = csvPath
	}
	if layoutPath != "" {
		cfg.CSV.LayoutPath = layoutPath
	}
	if bidKey != "" {
		cfg.BidKey = bidKey
	}
	if debug {
		cfg.Debug = true
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	return cfg
}

func newPathResolver(cfg *config.Config) *pathutil.PathResolver {
	return pathutil.New(pathutil.Config{
		DataDir:      cfg.History.DataDir,
		DatabasePath: cfg.History.DBPath,
		CSVPath:      cfg.CSV.Path,
		LayoutPath:   cfg.CSV.LayoutPath,
	})
}

func newSession(cmd *cobra.Command) *session {
	cfg := loadConfig()
	if err := cfg.Validate("csv.path", "bidKey"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	paths := newPathResolver(cfg)

	layout, err := csvsource.LoadLayout(paths.GetLayoutPath())
	exitOnError(err, "failed to load column layout")

	s := &session{
		cfg:   cfg,
		paths: paths,
		list:  bidlist.NewGuarded(),
		runID: uuid.NewString(),
	}
	s.recorder = s.openRecorder(cmd.Context())

	s.menu = menu.New(menu.Options{
		List:       s.list,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
		CSVPath:    paths.GetCSVPath(),
		Layout:     layout,
		DefaultKey: cfg.BidKey,
		Recorder:   s.recorder,
		RunID:      s.runID,
	})

	slog.Debug("Session ready", "run_id", s.runID, "csv", paths.GetCSVPath(), "history", cfg.History.Enabled)
	return s
}

// openRecorder opens the timing history. It falls back to a no-op recorder
// when history is disabled or the database cannot be opened.
func (s *session) openRecorder(ctx context.Context) db.Recorder {
	if !s.cfg.History.Enabled {
		return db.NewNoopRecorder()
	}

	dbPath := s.paths.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	if err := s.paths.EnsureParentDir(dbPath); err != nil {
		slog.Warn("Timing history unavailable, continuing without it", "path", dbPath, "error", err)
		return db.NewNoopRecorder()
	}

	conn, err := db.Open(dbPath)
	if err != nil {
		slog.Warn("Timing history unavailable, continuing without it", "path", dbPath, "error", err)
		return db.NewNoopRecorder()
	}

	history := db.NewTimingHistory(conn)
	if err := history.SetMetadata(ctx, metadataLastCSV, s.paths.GetCSVPath()); err != nil {
		slog.Warn("Failed to update history metadata", "error", err)
	}
	return history
}

// Close releases the list and the recorder. It is safe to call more than once.
func (s *session) Close() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Close(); err != nil {
		slog.Warn("Failed to close timing history", "error", err)
	}
	s.recorder = nil
	s.list.Clear()
}
