package notemerger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	MessageMergeCompleted = "Merge completed"
	MessageAlreadyExists  = "File already exists."
	MessageMergeFailed    = "An error occurred while merging notes"
)

type NoteMerger interface {
	LoadSelection(ctx context.Context, paths []string) (*Selection, error)
	Preview(ctx context.Context, selection *Selection, title string, options MergeOptions) (*MergeResult, error)
	Merge(ctx context.Context, selection *Selection, title string, options MergeOptions) (*MergeResult, error)
}

type DefaultNoteMerger struct {
	store       DocumentStore
	notifier    Notifier
	logger      *log.Logger
	config      *Config
	frontMatter *FrontMatter
	validator   Validator
	disposer    *Disposer
}

func NewDefaultNoteMerger(config *Config, store DocumentStore, notifier Notifier, logger *log.Logger) (*DefaultNoteMerger, error) {
	validator := NewDefaultValidator(config)
	if err := validator.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	frontMatter, err := NewFrontMatter(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create front matter parser: %w", err)
	}

	return &DefaultNoteMerger{
		store:       store,
		notifier:    notifier,
		logger:      logger,
		config:      config,
		frontMatter: frontMatter,
		validator:   validator,
		disposer:    NewDisposer(store, logger, config.BackupDir),
	}, nil
}

// Disposer exposes the disposer so callers can swap its clock.
func (m *DefaultNoteMerger) Disposer() *Disposer {
	return m.disposer
}

func (m *DefaultNoteMerger) LoadSelection(ctx context.Context, paths []string) (*Selection, error) {
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		if err := m.validator.ValidateNotePath(p); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		docs = append(docs, NewDocument(p))
	}
	return NewSelection(docs)
}

// Preview builds the merged note without writing it or touching the sources.
func (m *DefaultNoteMerger) Preview(ctx context.Context, selection *Selection, title string, options MergeOptions) (*MergeResult, error) {
	if selection == nil || selection.Len() == 0 {
		return nil, ErrEmptySelection
	}

	assembler := NewAssembler(m.frontMatter, options)
	result := &MergeResult{
		OutputPath: OutputPath(selection, title, m.config.Extension),
	}

	reads := m.readAll(ctx, selection.Documents())

	// Reads finish in any order; folding happens here, strictly in selection order.
	for _, read := range reads {
		if read.err != nil {
			m.logger.Error("unable to read note", "path", read.doc.Path, "error", read.err)
			result.Skipped = append(result.Skipped, read.doc.Path)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", read.doc.Path, read.err))
			continue
		}

		fields, err := m.frontMatter.Parse(read.content)
		if err != nil {
			m.logger.Warn("unable to parse note properties", "path", read.doc.Path, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", read.doc.Path, err))
		}
		assembler.Add(selection.Position(read.doc.Path), read.doc, read.content, fields)
	}

	result.Content = assembler.Content()
	result.Tags = assembler.Metadata().Tags()
	return result, nil
}

// Merge writes the merged note next to the first note in basename order, then
// moves or deletes the sources as options ask. Only a failure to create the
// merged note is returned; per-note read and disposition failures are logged
// and reported in the result.
func (m *DefaultNoteMerger) Merge(ctx context.Context, selection *Selection, title string, options MergeOptions) (*MergeResult, error) {
	result, err := m.Preview(ctx, selection, title, options)
	if err != nil {
		return nil, err
	}

	if err := m.store.CreateDocument(ctx, result.OutputPath, result.Content); err != nil {
		m.logger.Error("unable to create merged note", "path", result.OutputPath, "error", err)
		if errors.Is(err, ErrAlreadyExists) {
			m.notifier.Notify(MessageAlreadyExists, m.config.NoticeDuration())
		} else {
			m.notifier.Notify(MessageMergeFailed, m.config.NoticeDuration())
		}
		return nil, err
	}

	result.Disposition = m.disposer.Dispose(ctx, selection.Documents(), options)

	m.logger.Info("merged notes", "path", result.OutputPath, "notes", selection.Len()-len(result.Skipped))
	m.notifier.Notify(MessageMergeCompleted, m.config.NoticeDuration())
	return result, nil
}

type noteRead struct {
	doc     Document
	content string
	err     error
}

// readAll reads every note concurrently. Each goroutine owns one slot of the
// returned slice.
func (m *DefaultNoteMerger) readAll(ctx context.Context, docs []Document) []noteRead {
	reads := make([]noteRead, len(docs))

	var g errgroup.Group
	g.SetLimit(m.config.ReadConcurrency)
	for i, doc := range docs {
		g.Go(func() error {
			content, err := m.store.ReadDocument(ctx, doc.Path)
			reads[i] = noteRead{doc: doc, content: content, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return reads
}

// SummarizeResult renders a short human readable report of a merge.
func SummarizeResult(result *MergeResult) string {
	var out strings.Builder
	fmt.Fprintf(&out, "Merged note: %s\n", result.OutputPath)
	if len(result.Tags) > 0 {
		fmt.Fprintf(&out, "Tags: %s\n", strings.Join(result.Tags, ", "))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(&out, "Skipped notes: %d\n", len(result.Skipped))
		for _, p := range result.Skipped {
			fmt.Fprintf(&out, "  %s\n", p)
		}
	}
	if result.Disposition.BackupDir != "" {
		fmt.Fprintf(&out, "Backup folder: %s\n", result.Disposition.BackupDir)
	}
	if len(result.Disposition.Moved) > 0 {
		fmt.Fprintf(&out, "Moved notes: %d\n", len(result.Disposition.Moved))
	}
	if len(result.Disposition.Deleted) > 0 {
		fmt.Fprintf(&out, "Deleted notes: %d\n", len(result.Disposition.Deleted))
	}
	if len(result.Disposition.Failed) > 0 {
		fmt.Fprintf(&out, "Failed to dispose: %d\n", len(result.Disposition.Failed))
		for _, e := range result.Disposition.Errors {
			fmt.Fprintf(&out, "  %s\n", e)
		}
	}
	return out.String()
}
