package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"talentmesh-onboarding/internal/logging/types"
)

// FileConfig configures the file adapter
type FileConfig struct {
	FilePath    string
	Format      string // json or text
	CreateDirs  bool
	FileMode    os.FileMode
	SyncOnWrite bool
}

// FileAdapter appends log entries to a file
type FileAdapter struct {
	name   string
	config FileConfig
	file   *os.File
	mu     sync.Mutex
}

// NewFileAdapter creates a new file adapter and opens its target file
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("file adapter requires a file path")
	}
	if config.Format == "" {
		config.Format = "json"
	}
	if config.FileMode == 0 {
		config.FileMode = 0644
	}

	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", config.FilePath, err)
	}

	return &FileAdapter{
		name:   name,
		config: config,
		file:   file,
	}, nil
}

// Write appends a log entry to the file
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("file adapter %s is closed", a.name)
	}

	var line string
	if a.config.Format == "text" {
		line = formatText(entry)
	} else {
		data, err := json.Marshal(map[string]interface{}{
			"level":     entry.Level.String(),
			"message":   entry.Message,
			"timestamp": entry.Timestamp,
			"fields":    entry.Fields,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal log entry: %w", err)
		}
		line = string(data)
	}

	if _, err := fmt.Fprintln(a.file, line); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}

	if a.config.SyncOnWrite {
		return a.file.Sync()
	}
	return nil
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// Health verifies the file is still writable
func (a *FileAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("file adapter %s is closed", a.name)
	}
	if _, err := os.Stat(a.config.FilePath); err != nil {
		return fmt.Errorf("log file inaccessible: %w", err)
	}
	return nil
}

// Name returns the adapter name
func (a *FileAdapter) Name() string {
	return a.name
}
