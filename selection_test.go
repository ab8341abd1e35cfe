package notemerger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notemerger "github.com/thrawn01/note-merger"
)

func documents(paths ...string) []notemerger.Document {
	docs := make([]notemerger.Document, len(paths))
	for i, p := range paths {
		docs[i] = notemerger.NewDocument(p)
	}
	return docs
}

func TestNewDocument(t *testing.T) {
	doc := notemerger.NewDocument("projects/2024/Meeting notes.md")
	assert.Equal(t, "projects/2024/Meeting notes.md", doc.Path)
	assert.Equal(t, "Meeting notes.md", doc.Name)
	assert.Equal(t, "Meeting notes", doc.Basename)
}

func TestNewSelection(t *testing.T) {
	t.Run("SortsByBasename", func(t *testing.T) {
		selection, err := notemerger.NewSelection(documents("z/apple.md", "a/cherry.md", "m/Banana.md"))
		require.NoError(t, err)
		assert.Equal(t, []string{"z/apple.md", "m/Banana.md", "a/cherry.md"}, selection.Paths())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := notemerger.NewSelection(nil)
		assert.ErrorIs(t, err, notemerger.ErrEmptySelection)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := notemerger.NewSelection(documents("a.md", "b.md", "a.md"))
		assert.ErrorIs(t, err, notemerger.ErrDuplicateDocument)
	})

	t.Run("SameBasenameDifferentFolders", func(t *testing.T) {
		selection, err := notemerger.NewSelection(documents("x/note.md", "y/note.md"))
		require.NoError(t, err)
		assert.Equal(t, 2, selection.Len())
	})
}

func TestSelectionMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "Down", from: 0, to: 2, expected: []string{"b.md", "c.md", "a.md", "d.md"}},
		{name: "Up", from: 3, to: 1, expected: []string{"a.md", "d.md", "b.md", "c.md"}},
		{name: "Same", from: 2, to: 2, expected: []string{"a.md", "b.md", "c.md", "d.md"}},
		{name: "Adjacent", from: 1, to: 2, expected: []string{"a.md", "c.md", "b.md", "d.md"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			selection, err := notemerger.NewSelection(documents("d.md", "c.md", "b.md", "a.md"))
			require.NoError(t, err)

			require.NoError(t, selection.Move(test.from, test.to))
			assert.Equal(t, test.expected, selection.Paths())
			assert.Equal(t, []string{"a.md", "b.md", "c.md", "d.md"}, pathsOf(selection.Sorted()))
		})
	}

	selection, err := notemerger.NewSelection(documents("a.md"))
	require.NoError(t, err)
	assert.Error(t, selection.Move(0, 1))
	assert.Error(t, selection.Move(-1, 0))
}

func TestSelectionReorder(t *testing.T) {
	selection, err := notemerger.NewSelection(documents("a.md", "b.md", "c.md"))
	require.NoError(t, err)

	require.NoError(t, selection.Reorder([]string{"c.md", "a.md", "b.md"}))
	assert.Equal(t, []string{"c.md", "a.md", "b.md"}, selection.Paths())
	assert.Equal(t, 1, selection.Position("c.md"))
	assert.Equal(t, 3, selection.Position("b.md"))
	assert.Equal(t, 0, selection.Position("missing.md"))

	assert.Error(t, selection.Reorder([]string{"a.md", "b.md"}))
	assert.Error(t, selection.Reorder([]string{"a.md", "b.md", "x.md"}))
	assert.Error(t, selection.Reorder([]string{"a.md", "a.md", "b.md"}))
	assert.Equal(t, []string{"c.md", "a.md", "b.md"}, selection.Paths())
}

func TestSelectionDefaultTitle(t *testing.T) {
	selection, err := notemerger.NewSelection(documents("x/Zebra.md", "y/Apple.md"))
	require.NoError(t, err)
	require.NoError(t, selection.Move(1, 0))
	assert.Equal(t, "Merged - Apple", selection.DefaultTitle("Merged - "))
}

func pathsOf(docs []notemerger.Document) []string {
	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = doc.Path
	}
	return paths
}
