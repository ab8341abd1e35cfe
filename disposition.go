package notemerger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const backupFolderLayout = "20060102T150405"

// Disposer moves merged source notes into a timestamped backup folder or
// deletes them. Every note is handled on its own: one failure is logged and
// recorded but never stops the others, and nothing is rolled back.
type Disposer struct {
	store     DocumentStore
	logger    *log.Logger
	backupDir string
	now       func() time.Time
}

func NewDisposer(store DocumentStore, logger *log.Logger, backupDir string) *Disposer {
	return &Disposer{
		store:     store,
		logger:    logger,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to name backup folders.
func (d *Disposer) WithClock(now func() time.Time) *Disposer {
	d.now = now
	return d
}

// BackupFolderName formats t in local time as YYYYMMDDTHHmmss.
func BackupFolderName(t time.Time) string {
	return t.Local().Format(backupFolderLayout)
}

// Dispose applies the options to docs. Deletion wins when both NoBackup and
// MoveNotes are set.
func (d *Disposer) Dispose(ctx context.Context, docs []Document, options MergeOptions) DispositionResult {
	switch {
	case options.NoBackup:
		return d.deleteAll(ctx, docs)
	case options.MoveNotes:
		return d.moveAll(ctx, docs)
	default:
		return DispositionResult{}
	}
}

func (d *Disposer) moveAll(ctx context.Context, docs []Document) DispositionResult {
	var result DispositionResult

	folder, err := d.prepareBackupFolder(ctx)
	if err != nil {
		d.logger.Error("unable to prepare backup folder", "dir", d.backupDir, "error", err)
		for _, doc := range docs {
			result.Failed = append(result.Failed, doc.Path)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", doc.Path, err))
		}
		return result
	}
	result.BackupDir = folder

	d.each(ctx, docs, &result, func(ctx context.Context, doc Document) error {
		return d.store.RenameDocument(ctx, doc.Path, folder+"/"+doc.Name)
	}, &result.Moved)

	return result
}

func (d *Disposer) deleteAll(ctx context.Context, docs []Document) DispositionResult {
	var result DispositionResult
	d.each(ctx, docs, &result, func(ctx context.Context, doc Document) error {
		return d.store.DeleteDocument(ctx, doc.Path)
	}, &result.Deleted)
	return result
}

// each runs action for every note concurrently, recording successes in done.
func (d *Disposer) each(ctx context.Context, docs []Document, result *DispositionResult, action func(context.Context, Document) error, done *[]string) {
	var mu sync.Mutex
	var g errgroup.Group

	for _, doc := range docs {
		g.Go(func() error {
			err := action(ctx, doc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				d.logger.Warn("unable to dispose of note", "path", doc.Path, "error", err)
				result.Failed = append(result.Failed, doc.Path)
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", doc.Path, err))
				return nil
			}
			*done = append(*done, doc.Path)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(*done)
	sort.Strings(result.Failed)
	sort.Strings(result.Errors)
}

// prepareBackupFolder makes sure the backup root exists and creates this
// run's timestamped folder, adding a -2, -3, ... suffix when a merge in the
// same second already claimed the name.
func (d *Disposer) prepareBackupFolder(ctx context.Context) (string, error) {
	exists, err := d.store.DirectoryExists(ctx, d.backupDir)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := d.store.CreateDirectory(ctx, d.backupDir); err != nil {
			return "", err
		}
	}

	base := d.backupDir + "/" + BackupFolderName(d.now())
	folder := base
	for n := 2; ; n++ {
		exists, err := d.store.DirectoryExists(ctx, folder)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		folder = fmt.Sprintf("%s-%d", base, n)
	}

	if err := d.store.CreateDirectory(ctx, folder); err != nil {
		return "", err
	}
	return folder, nil
}
