package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// fsStorage keeps each key as one file under a base directory.
// Writes go to a temp file first and are renamed into place, so a reader
// never sees a half-written list.
type fsStorage struct {
	fs  afero.Fs
	dir string
}

// NewFS creates a filesystem-backed storage rooted at dir, creating it if missing.
func NewFS(fsys afero.Fs, dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &fsStorage{fs: fsys, dir: dir}, nil
}

// path maps key under the base dir. Keys that clean to nothing or climb
// out of it are rejected; dots inside a segment are fine.
func (s *fsStorage) path(key string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(key, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}

// Put writes the object atomically via temp file + rename.
func (s *fsStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	p, err := s.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := afero.TempFile(s.fs, filepath.Dir(p), ".put-*")
	if err != nil {
		return ObjectInfo{}, err
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(tmp.Name())
		return ObjectInfo{}, err
	}
	if err := s.fs.Rename(tmp.Name(), p); err != nil {
		_ = s.fs.Remove(tmp.Name())
		return ObjectInfo{}, err
	}

	info := ObjectInfo{Key: key, Size: n, ContentType: opt.ContentType}
	if st, err := s.fs.Stat(p); err == nil {
		info.LastModified = st.ModTime()
	}
	return info, nil
}

// Get opens the file stored under key.
func (s *fsStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrNotExist
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}
