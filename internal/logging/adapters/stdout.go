package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"talentmesh-onboarding/internal/logging/types"
)

// StdoutConfig configures the stdout adapter
type StdoutConfig struct {
	Format    string // json or text
	Colorized bool
}

// StdoutAdapter writes log entries to standard output
type StdoutAdapter struct {
	name   string
	config StdoutConfig
	mu     sync.Mutex
}

// NewStdoutAdapter creates a new stdout adapter
func NewStdoutAdapter(name string, config StdoutConfig) *StdoutAdapter {
	if config.Format == "" {
		config.Format = "json"
	}
	return &StdoutAdapter{
		name:   name,
		config: config,
	}
}

// Write writes a log entry to stdout
func (a *StdoutAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.config.Format == "text" {
		fmt.Fprintln(os.Stdout, formatText(entry))
		return nil
	}

	line, err := json.Marshal(map[string]interface{}{
		"level":     entry.Level.String(),
		"message":   entry.Message,
		"timestamp": entry.Timestamp,
		"fields":    entry.Fields,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(line))
	return nil
}

// Close is a no-op for stdout
func (a *StdoutAdapter) Close() error {
	return nil
}

// Health always reports healthy for stdout
func (a *StdoutAdapter) Health() error {
	return nil
}

// Name returns the adapter name
func (a *StdoutAdapter) Name() string {
	return a.name
}

// formatText renders an entry as a single human-readable line with fields
// in stable order
func formatText(entry *types.LogEntry) string {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString("] ")
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Fields[k]))
		}
	}

	return b.String()
}
