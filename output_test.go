package notemerger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notemerger "github.com/thrawn01/note-merger"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{title: "A:B", expected: "A B"},
		{title: "", expected: "unnamed"},
		{title: "   ", expected: "unnamed"},
		{title: "Merged - notes", expected: "Merged - notes"},
		{title: "v1.2/draft", expected: "v1 2 draft"},
		{title: `a*b?c<d>e|f¥g`, expected: "a b c d e f g"},
		{title: "::", expected: "unnamed"},
		{title: "日本語のノート", expected: "日本語のノート"},
	}

	for _, test := range tests {
		t.Run(test.title, func(t *testing.T) {
			assert.Equal(t, test.expected, notemerger.NormalizeTitle(test.title))
		})
	}
}

func TestOutputPath(t *testing.T) {
	newSelection := func(t *testing.T, paths ...string) *notemerger.Selection {
		t.Helper()
		docs := make([]notemerger.Document, len(paths))
		for i, p := range paths {
			docs[i] = notemerger.NewDocument(p)
		}
		selection, err := notemerger.NewSelection(docs)
		require.NoError(t, err)
		return selection
	}

	t.Run("RootLevel", func(t *testing.T) {
		selection := newSelection(t, "b.md", "a.md")
		assert.Equal(t, "", notemerger.OutputDirectory(selection))
		assert.Equal(t, "Merged.md", notemerger.OutputPath(selection, "Merged", ".md"))
	})

	t.Run("FirstSortedNoteDirectory", func(t *testing.T) {
		selection := newSelection(t, "zeta/Beta.md", "alpha/Gamma.md", "inbox/Alpha.md")
		assert.Equal(t, "inbox", notemerger.OutputDirectory(selection))
		assert.Equal(t, "inbox/A B.md", notemerger.OutputPath(selection, "A:B", ".md"))
	})

	t.Run("IgnoresReordering", func(t *testing.T) {
		selection := newSelection(t, "deep/dir/Alpha.md", "other/Beta.md")
		require.NoError(t, selection.Move(1, 0))
		assert.Equal(t, "other/Beta.md", selection.Documents()[0].Path)
		assert.Equal(t, "deep/dir", notemerger.OutputDirectory(selection))
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		selection := newSelection(t, "dir/a.md")
		assert.Equal(t, "dir/unnamed.md", notemerger.OutputPath(selection, "", ".md"))
	})
}
