package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type fsSource struct{}

func NewFSSource() Source {
	return fsSource{}
}

func (fsSource) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapFSError(path, err)
	}
	return data, nil
}

func (fsSource) Stat(_ context.Context, path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, wrapFSError(path, err)
	}
	return FileInfo{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

func wrapFSError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	return fmt.Errorf("read %s: %w", path, err)
}
