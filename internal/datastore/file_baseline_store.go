package datastore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/rs/zerolog"
)

// FileBaselineStore keeps one file per page holding the raw content of the
// most recent successful fetch. It is not safe for concurrent writers to the
// same page.
type FileBaselineStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileBaselineStore creates the store, creating dir if needed
func NewFileBaselineStore(dir string, logger zerolog.Logger) (*FileBaselineStore, error) {
	if dir == "" {
		return nil, common.NewValidationError("pages_dir", dir, "baseline directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, common.WrapError(err, fmt.Sprintf("failed to create baseline directory %s", dir))
	}

	storeLogger := logger.With().Str("component", "FileBaselineStore").Logger()
	storeLogger.Debug().Str("dir", dir).Msg("Baseline store initialized")

	return &FileBaselineStore{dir: dir, logger: storeLogger}, nil
}

// Path returns the baseline file path for a page.
func (s *FileBaselineStore) Path(pageName string) string {
	return filepath.Join(s.dir, PageFileName(pageName))
}

// Has reports whether a baseline exists for the page
func (s *FileBaselineStore) Has(pageName string) (bool, error) {
	info, err := os.Stat(s.Path(pageName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, common.WrapError(err, fmt.Sprintf("failed to stat baseline for '%s'", pageName))
	}
	return info.Mode().IsRegular(), nil
}

// Get returns the stored raw content, or ErrBaselineNotFound
func (s *FileBaselineStore) Get(pageName string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(pageName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrBaselineNotFound, pageName)
		}
		return nil, common.WrapError(err, fmt.Sprintf("failed to read baseline for '%s'", pageName))
	}
	return data, nil
}

// Put replaces the baseline. The content is written to a temporary file in the
// same directory and renamed over the old one, so readers never see a partial file.
func (s *FileBaselineStore) Put(pageName string, raw []byte) error {
	target := s.Path(pageName)

	tmp, err := os.CreateTemp(s.dir, ".baseline-*")
	if err != nil {
		return common.WrapError(err, "failed to create temporary baseline file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return common.WrapError(err, fmt.Sprintf("failed to write baseline for '%s'", pageName))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return common.WrapError(err, fmt.Sprintf("failed to close baseline for '%s'", pageName))
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		s.logger.Debug().Err(err).Str("file", tmpName).Msg("Failed to set baseline permissions")
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return common.WrapError(err, fmt.Sprintf("failed to replace baseline for '%s'", pageName))
	}

	s.logger.Debug().Str("page", pageName).Str("file", target).Int("size", len(raw)).Msg("Baseline stored")
	return nil
}
