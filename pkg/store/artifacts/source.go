package artifacts

import (
	"context"
	"errors"
	"time"
)

var ErrNotExist = errors.New("artifact does not exist")

type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Source reads analysis artifacts written by the external pipeline.
// Implementations must wrap ErrNotExist for missing paths.
type Source interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
}
