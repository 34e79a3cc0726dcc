package filestorages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrInvalidKey        = errors.New("invalid file key")
	ErrInvalidRootDir    = errors.New("invalid root directory")
)

const (
	tempPattern = ".tmp-*"

	// filePerm is applied to every stored file; reports are read by other
	// processes such as a static web server.
	filePerm os.FileMode = 0o644
)

type PutResult struct {
	FileKey string
	Size    int64
}

type PutOptions struct {
	// AllowOverwrite replaces an existing file atomically. Without it the
	// put is create-if-not-exists.
	AllowOverwrite bool
}

//go:generate mockgen -source=file_storage.go -destination=./mocks/file_storage_mock.go -package=mocks
type FileStorage interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the keys under prefix (a directory key), sorted ascending.
	// A missing prefix yields an empty list.
	List(ctx context.Context, prefix string) ([]string, error)
}

type fileStorage struct {
	dir string
}

func NewFileStorage(rootDir string) (FileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("%w: root directory cannot be empty", ErrInvalidRootDir)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve absolute path: %w", ErrInvalidRootDir, err)
	}

	return &fileStorage{dir: absRootDir}, nil
}

func (s *fileStorage) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error) {
	if err := s.validateKey(key); err != nil {
		return nil, err
	}

	finalPath := filepath.Join(s.dir, filepath.Clean(key))
	tmpPath, size, err := s.writeTemp(ctx, filepath.Dir(finalPath), r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if opts.AllowOverwrite {
		// Atomic replace (POSIX)
		if err := os.Rename(tmpPath, finalPath); err != nil {
			return nil, err
		}
	} else {
		// Atomic publish-if-not-exists; the temp name is dropped by the deferred remove
		if err := os.Link(tmpPath, finalPath); err != nil {
			if errors.Is(err, os.ErrExist) {
				return nil, ErrFileAlreadyExists
			}
			return nil, err
		}
	}

	return &PutResult{FileKey: key, Size: size}, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := s.validateKey(key); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	return file, nil
}

func (s *fileStorage) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.validateKey(prefix); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.dir, filepath.Clean(prefix)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		keys = append(keys, filepath.ToSlash(filepath.Join(filepath.Clean(prefix), entry.Name())))
	}
	sort.Strings(keys)
	return keys, nil
}

// writeTemp copies r into a synced temp file in dir so a crash never leaves
// a partial file under the final name.
func (s *fileStorage) writeTemp(ctx context.Context, dir string, r io.Reader) (string, int64, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", 0, err
	}
	tmpPath := tmp.Name()

	fail := func(err error) (string, int64, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, err
	}

	size, err := io.Copy(tmp, r)
	if err != nil {
		if ctx.Err() != nil {
			return fail(ctx.Err())
		}
		return fail(err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, err
	}

	return tmpPath, size, nil
}

func (s *fileStorage) validateKey(key string) error {
	if key == "" || filepath.IsAbs(key) {
		return ErrInvalidKey
	}
	cleanPath := filepath.Clean(key)
	if cleanPath == ".." || cleanPath == "." || strings.HasPrefix(cleanPath, "..") {
		return ErrInvalidKey
	}
	// the resolved path must stay within the root directory
	rel, err := filepath.Rel(s.dir, filepath.Join(s.dir, cleanPath))
	if err != nil || strings.HasPrefix(rel, "..") {
		return ErrInvalidKey
	}
	return nil
}
