package notemerger

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrEmptySelection    = errors.New("no notes selected")
	ErrDuplicateDocument = errors.New("note selected more than once")
)

// Selection is the ordered list of notes to merge. It starts out sorted by
// basename and can then be reordered freely.
type Selection struct {
	docs []Document
}

func NewDocument(notePath string) Document {
	name := path.Base(notePath)
	return Document{
		Path:     notePath,
		Name:     name,
		Basename: strings.TrimSuffix(name, path.Ext(name)),
	}
}

func NewSelection(docs []Document) (*Selection, error) {
	if len(docs) == 0 {
		return nil, ErrEmptySelection
	}

	seen := make(map[string]bool)
	for _, doc := range docs {
		if seen[doc.Path] {
			return nil, fmt.Errorf("%s: %w", doc.Path, ErrDuplicateDocument)
		}
		seen[doc.Path] = true
	}

	return &Selection{docs: sortByBasename(docs)}, nil
}

func sortByBasename(docs []Document) []Document {
	sorted := append([]Document(nil), docs...)
	collator := collate.New(language.Und)
	sort.SliceStable(sorted, func(i, j int) bool {
		return collator.CompareString(sorted[i].Basename, sorted[j].Basename) < 0
	})
	return sorted
}

func (s *Selection) Documents() []Document {
	return append([]Document(nil), s.docs...)
}

func (s *Selection) Len() int {
	return len(s.docs)
}

// Sorted returns the notes in basename order regardless of any reordering.
func (s *Selection) Sorted() []Document {
	return sortByBasename(s.docs)
}

func (s *Selection) Paths() []string {
	paths := make([]string, len(s.docs))
	for i, doc := range s.docs {
		paths[i] = doc.Path
	}
	return paths
}

// Move takes the note at index from and reinserts it at index to, shifting
// the notes between them, as a drag and drop does.
func (s *Selection) Move(from, to int) error {
	if from < 0 || from >= len(s.docs) || to < 0 || to >= len(s.docs) {
		return fmt.Errorf("move %d -> %d out of range for %d notes", from, to, len(s.docs))
	}
	if from == to {
		return nil
	}

	doc := s.docs[from]
	docs := append(s.docs[:from:from], s.docs[from+1:]...)
	docs = append(docs[:to], append([]Document{doc}, docs[to:]...)...)
	s.docs = docs
	return nil
}

// Reorder puts the notes in the order of paths, which must name every
// selected note exactly once.
func (s *Selection) Reorder(paths []string) error {
	if len(paths) != len(s.docs) {
		return fmt.Errorf("reorder needs %d paths, got %d", len(s.docs), len(paths))
	}

	byPath := make(map[string]Document, len(s.docs))
	for _, doc := range s.docs {
		byPath[doc.Path] = doc
	}

	ordered := make([]Document, 0, len(paths))
	for _, p := range paths {
		doc, ok := byPath[p]
		if !ok {
			return fmt.Errorf("%s: not in selection", p)
		}
		delete(byPath, p)
		ordered = append(ordered, doc)
	}

	s.docs = ordered
	return nil
}

// Position returns the 1-based position of a note in the current order, or 0.
func (s *Selection) Position(notePath string) int {
	for i, doc := range s.docs {
		if doc.Path == notePath {
			return i + 1
		}
	}
	return 0
}

func (s *Selection) DefaultTitle(prefix string) string {
	return prefix + s.Sorted()[0].Basename
}
