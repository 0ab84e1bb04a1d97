package storage

import (
	"context"
	"io"
)

// Store guarda archivos subidos y devuelve el nombre almacenado.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
