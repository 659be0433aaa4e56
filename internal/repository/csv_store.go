package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/epeers/sqglp/internal/models"
)

// ErrNoResultsFile is returned when the result table has not been written yet
var ErrNoResultsFile = errors.New("results file not found")

// CSVResultStore keeps the latest result table in a single CSV file
type CSVResultStore struct {
	path string
}

// NewCSVResultStore creates a store writing to path
func NewCSVResultStore(path string) *CSVResultStore {
	return &CSVResultStore{path: path}
}

// Path returns the file the store reads and writes
func (s *CSVResultStore) Path() string {
	return s.path
}

// SaveRun replaces the result table with run's results. The table is written
// to a temporary file in the same directory and renamed into place, so
// readers see either the old table or the new one, never a partial file.
func (s *CSVResultStore) SaveRun(_ context.Context, run *models.RunSummary) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if err := WriteResultsCSV(tmp, run.Results); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to move results into place: %w", err)
	}
	return nil
}

// LoadResults reads the current result table along with its modification time
func (s *CSVResultStore) LoadResults(_ context.Context) ([]models.AnalysisResult, time.Time, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, time.Time{}, ErrNoResultsFile
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to open results: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to stat results: %w", err)
	}

	results, err := ReadResultsCSV(f)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return results, info.ModTime(), nil
}

// ModTime returns the modification time of the result table
func (s *CSVResultStore) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, ErrNoResultsFile
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
