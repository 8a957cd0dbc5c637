// Package storage provides file-based persistence for report artifacts
// and user settings.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/AnnaVal-na/finsight/internal/common"
	"github.com/AnnaVal-na/finsight/internal/interfaces"
	"github.com/AnnaVal-na/finsight/internal/models"
)

// FileStore provides file-based JSON storage for reports and settings.
type FileStore struct {
	basePath     string
	settingsPath string
	logger       *common.Logger
}

// subdirectories defines the directory layout under basePath.
var subdirectories = []string{"reports", "charts"}

// NewFileStore creates a new FileStore and ensures all subdirectories exist.
func NewFileStore(logger *common.Logger, config *common.StorageConfig) (*FileStore, error) {
	fs := &FileStore{
		basePath:     config.Path,
		settingsPath: config.SettingsPath,
		logger:       logger,
	}

	for _, sub := range subdirectories {
		dir := filepath.Join(fs.basePath, sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	logger.Debug().Str("path", config.Path).Msg("FileStore opened")
	return fs, nil
}

// sanitizeKey makes a key safe for use as a filename.
// Replaces /, \, :, spaces with _ and collapses ".." to "_" to prevent
// path traversal.
func (fs *FileStore) sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_", "..", "_")
	return r.Replace(key)
}

// writeFile writes data atomically: temp file in the same directory, then
// rename.
func (fs *FileStore) writeFile(target string, data []byte) error {
	dir := filepath.Dir(target)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// marshalJSON renders indented JSON without HTML escaping so non-ASCII
// text survives byte-for-byte.
func marshalJSON(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveSpendingReport writes the report as a JSON artifact, one file per
// invocation. Returns the storage key the report was written under.
func (fs *FileStore) SaveSpendingReport(_ context.Context, report *models.SpendingReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	key := fmt.Sprintf("spending_%s_%s_%s",
		fs.sanitizeKey(report.Category),
		report.GeneratedAt.Format("20060102T150405"),
		report.ID[:8],
	)
	target := filepath.Join(fs.basePath, "reports", key+".json")

	data, err := marshalJSON(report)
	if err != nil {
		return "", err
	}

	if err := fs.writeFile(target, data); err != nil {
		return "", err
	}

	fs.logger.Info().Str("key", key).Str("path", target).Msg("Spending report saved")
	return key, nil
}

// SaveChart writes rendered PNG chart bytes under the given key.
func (fs *FileStore) SaveChart(_ context.Context, key string, png []byte) error {
	target := filepath.Join(fs.basePath, "charts", fs.sanitizeKey(key)+".png")
	if err := fs.writeFile(target, png); err != nil {
		return err
	}
	fs.logger.Debug().Str("key", key).Msg("Chart saved")
	return nil
}

// rawSettings mirrors the settings file layout. Elements may be any JSON
// scalar; they are coerced to strings after parsing.
type rawSettings struct {
	Currencies []interface{} `json:"user_currencies"`
	Stocks     []interface{} `json:"user_stocks"`
}

// LoadSettings reads the user settings file. A missing or malformed file
// yields both lists empty, never a partial result.
func (fs *FileStore) LoadSettings(_ context.Context) models.UserSettings {
	data, err := os.ReadFile(fs.settingsPath)
	if err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.settingsPath).Msg("Failed to read settings, using defaults")
		return models.EmptyUserSettings()
	}

	var raw rawSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.settingsPath).Msg("Failed to parse settings, using defaults")
		return models.EmptyUserSettings()
	}

	return models.UserSettings{
		Currencies: coerceStrings(raw.Currencies),
		Stocks:     coerceStrings(raw.Stocks),
	}
}

// coerceStrings converts settings list elements to strings the way the
// file contract requires: strings pass through, numbers are formatted.
func coerceStrings(values []interface{}) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		default:
			result = append(result, fmt.Sprint(val))
		}
	}
	return result
}

// Ensure FileStore implements the storage contracts
var (
	_ interfaces.SettingsStore = (*FileStore)(nil)
	_ interfaces.ReportStore   = (*FileStore)(nil)
)
