// Package pathutil provides centralized path management for bidlist data files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages paths for the bid CSV, the column layout and the history database.
type PathResolver struct {
	dataDir      string
	databasePath string
	csvPath      string
	layoutPath   string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir holds bidlist's own files (e.g., ./.bidlist)
	DataDir string
	// DatabasePath is the SQLite timing history file
	DatabasePath string
	// CSVPath is the bid export to load
	CSVPath string
	// LayoutPath is the optional YAML column layout
	LayoutPath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataDir}/history.db
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir, "history.db")
	}

	return &PathResolver{
		dataDir:      config.DataDir,
		databasePath: dbPath,
		csvPath:      config.CSVPath,
		layoutPath:   config.LayoutPath,
	}
}

// GetDataDir returns the data directory.
func (p *PathResolver) GetDataDir() string {
	return p.dataDir
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetCSVPath returns the absolute bid CSV path when it can be resolved,
// otherwise the path as configured.
func (p *PathResolver) GetCSVPath() string {
	return absOrSelf(p.csvPath)
}

// GetLayoutPath returns the layout file path, or "" when none is configured.
func (p *PathResolver) GetLayoutPath() string {
	if p.layoutPath == "" {
		return ""
	}
	return absOrSelf(p.layoutPath)
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a regular file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
