package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore escribe archivos en un directorio del disco local.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Save escribe el contenido con un nombre único, conservando la extensión.
func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filepath.Base(filename))
	stored := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return stored, nil
}
