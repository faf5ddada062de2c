// =============================================================================
// SEPA XML Export - File Manager Utility
// =============================================================================
//
// This module persists generated output units to disk. The engine itself
// never touches the filesystem; everything that writes files lives here so
// the core stays embeddable.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paybatch/sepaxml/internal/types"
)

// =============================================================================
// OUTPUT WRITER
// =============================================================================

// OutputWriter writes generated artifacts into an output directory.
type OutputWriter struct {
	// OutputDir is the directory artifacts are written to. Created on
	// demand.
	OutputDir string

	// FilenameTemplate names written files. Supported placeholders:
	//   {label}     - The engine-assigned artifact label
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	FilenameTemplate string
}

// NewOutputWriter creates an OutputWriter for the given directory.
func NewOutputWriter(outputDir, filenameTemplate string) *OutputWriter {
	if filenameTemplate == "" {
		filenameTemplate = "{label}"
	}
	return &OutputWriter{OutputDir: outputDir, FilenameTemplate: filenameTemplate}
}

// WriteUnits writes all units and returns the paths written, in unit
// order.
func (w *OutputWriter) WriteUnits(units []types.OutputUnit) ([]string, error) {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", w.OutputDir, err)
	}

	paths := make([]string, 0, len(units))
	for _, unit := range units {
		name := ExpandFileName(w.FilenameTemplate, unit.Label)
		path := filepath.Join(w.OutputDir, name)
		if err := os.WriteFile(path, unit.Data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// ExpandFileName resolves the placeholder template to a concrete file
// name. The artifact's own extension is preserved.
func ExpandFileName(template, label string) string {
	now := time.Now()

	replacements := map[string]string{
		"{label}":     label,
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
	}

	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// A template without {label} would collide across artifacts and drop
	// the extension; fall back to prefixing the label.
	if !strings.Contains(template, "{label}") {
		result = result + "_" + label
	}

	return result
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
