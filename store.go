package notemerger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const (
	DefaultFilePermissions = 0644
	DefaultDirPermissions  = 0755
)

var (
	ErrAlreadyExists    = errors.New("file already exists")
	ErrDocumentNotFound = errors.New("note not found")
)

// DocumentStore is the vault the notes live in. Paths are vault relative and
// use forward slashes.
type DocumentStore interface {
	ReadDocument(ctx context.Context, path string) (string, error)
	// CreateDocument fails with ErrAlreadyExists without writing anything
	// when path is taken.
	CreateDocument(ctx context.Context, path string, content string) error
	RenameDocument(ctx context.Context, path string, newPath string) error
	DeleteDocument(ctx context.Context, path string) error
	DirectoryExists(ctx context.Context, path string) (bool, error)
	CreateDirectory(ctx context.Context, path string) error
}

// AFSStore is a DocumentStore rooted at a vault base URL. Any afs scheme
// works; a plain directory path is a local vault.
type AFSStore struct {
	fs   afs.Service
	root string
}

func NewAFSStore(root string) *AFSStore {
	return &AFSStore{
		fs:   afs.New(),
		root: root,
	}
}

func (s *AFSStore) URL(path string) string {
	return url.Join(s.root, strings.TrimPrefix(path, "/"))
}

func (s *AFSStore) ReadDocument(ctx context.Context, path string) (string, error) {
	location := s.URL(path)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return "", fmt.Errorf("%s: %w", path, ErrDocumentNotFound)
	}

	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func (s *AFSStore) CreateDocument(ctx context.Context, path string, content string) error {
	location := s.URL(path)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists {
		return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
	}

	if err := s.fs.Upload(ctx, location, DefaultFilePermissions, bytes.NewReader([]byte(content))); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *AFSStore) RenameDocument(ctx context.Context, path string, newPath string) error {
	if err := s.fs.Move(ctx, s.URL(path), s.URL(newPath)); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", path, newPath, err)
	}
	return nil
}

func (s *AFSStore) DeleteDocument(ctx context.Context, path string) error {
	if err := s.fs.Delete(ctx, s.URL(path)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *AFSStore) DirectoryExists(ctx context.Context, path string) (bool, error) {
	location := s.URL(path)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil || !exists {
		return false, err
	}

	object, err := s.fs.Object(ctx, location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return object.IsDir(), nil
}

func (s *AFSStore) CreateDirectory(ctx context.Context, path string) error {
	if err := s.fs.Create(ctx, s.URL(path), DefaultDirPermissions|os.ModeDir, true); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
