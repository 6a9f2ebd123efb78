package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a Store backed by one file per key inside a directory. Writes go
// through a temp file and a rename, so a reader never observes a partial
// value.
type Dir struct {
	root string
}

// NewDir creates a file-backed store rooted at dir, creating the directory
// when needed.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	return &Dir{root: dir}, nil
}

// path maps a key to its backing file. Keys contain ':' separators which are
// not portable in file names.
func (d *Dir) path(key string) string {
	return filepath.Join(d.root, strings.ReplaceAll(key, ":", "_")+".json")
}

func (d *Dir) Put(ctx context.Context, key string, value []byte) error {
	dst := d.path(key)
	tmp, err := os.CreateTemp(d.root, ".put-*")
	if err != nil {
		return fmt.Errorf("cannot stage write for %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("cannot commit %q: %w", key, err)
	}
	return nil
}

func (d *Dir) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := os.ReadFile(d.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cannot read %q: %w", key, err)
	}
	return value, true, nil
}
