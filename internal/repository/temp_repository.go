package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ectechz/face-emotion/internal/config"
)

// TempRepository stores uploaded bytes as uniquely named files scoped to a
// single request. Every successful Acquire is paired with exactly one
// Release by the owning request.
type TempRepository interface {
	Acquire(data []byte, originalName string) (string, error)
	Release(path string)
}

type tempRepository struct {
	dir string
	log *zap.Logger
}

func NewTempRepository(cfg *config.AppConfig, log *zap.Logger) (TempRepository, error) {
	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory %s: %w", cfg.TmpDir, err)
	}

	return &tempRepository{
		dir: cfg.TmpDir,
		log: log,
	}, nil
}

// Acquire writes the bytes verbatim to a generated path that keeps the
// original file's extension, lowercased. Paths are uuid-based so
// concurrent requests never collide.
func (r *tempRepository) Acquire(data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(r.dir, uuid.New().String()+ext)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		r.log.Error("Failed to save uploaded file",
			zap.String("path", path),
			zap.Error(err))
		return "", err
	}

	r.log.Info("File saved",
		zap.String("path", path),
		zap.Int("size", len(data)))

	return path, nil
}

// Release removes the file. It is idempotent and never fails the caller:
// a missing file is a no-op, any other removal error is logged and
// swallowed so cleanup can never mask the primary response.
func (r *tempRepository) Release(path string) {
	err := os.Remove(path)
	if err == nil {
		r.log.Info("Temporary file removed", zap.String("path", path))
		return
	}
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	r.log.Warn("Failed to cleanup temporary file",
		zap.String("path", path),
		zap.Error(err))
}
