package notemerger_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	notemerger "github.com/thrawn01/note-merger"
)

var errInjected = errors.New("injected failure")

// flakyStore wraps a DocumentStore and fails the operations listed for a path.
type flakyStore struct {
	notemerger.DocumentStore
	failRead   map[string]bool
	failRename map[string]bool
	failDelete map[string]bool
	failCreate bool
}

func (s *flakyStore) ReadDocument(ctx context.Context, path string) (string, error) {
	if s.failRead[path] {
		return "", errInjected
	}
	return s.DocumentStore.ReadDocument(ctx, path)
}

func (s *flakyStore) CreateDocument(ctx context.Context, path string, content string) error {
	if s.failCreate {
		return errInjected
	}
	return s.DocumentStore.CreateDocument(ctx, path, content)
}

func (s *flakyStore) RenameDocument(ctx context.Context, path string, newPath string) error {
	if s.failRename[path] {
		return errInjected
	}
	return s.DocumentStore.RenameDocument(ctx, path, newPath)
}

func (s *flakyStore) DeleteDocument(ctx context.Context, path string) error {
	if s.failDelete[path] {
		return errInjected
	}
	return s.DocumentStore.DeleteDocument(ctx, path)
}

func discardLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(io.Discard)
}
