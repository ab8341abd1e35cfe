package notemerger_test

import (
	"strings"
	"testing"

	notemerger "github.com/thrawn01/note-merger"
)

func TestDefaultValidator_ValidateTitle(t *testing.T) {
	config := notemerger.DefaultConfig()
	validator := notemerger.NewDefaultValidator(config)

	tests := []struct {
		name                string
		title               string
		expectValid         bool
		expectedIssues      []string
		expectedSuggestions []string
	}{
		{
			name:        "ValidTitle",
			title:       "Merged - Meeting notes",
			expectValid: true,
		},
		{
			name:                "EmptyTitle",
			title:               "",
			expectValid:         false,
			expectedIssues:      []string{"cannot be empty"},
			expectedSuggestions: []string{"unnamed.md"},
		},
		{
			name:                "Colon",
			title:               "A:B",
			expectValid:         false,
			expectedIssues:      []string{"not allowed in file names"},
			expectedSuggestions: []string{"A B.md"},
		},
		{
			name:                "WindowsReserved",
			title:               "what? <draft>",
			expectValid:         false,
			expectedIssues:      []string{"not allowed in file names"},
			expectedSuggestions: []string{"what   draft .md"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := validator.ValidateTitle(test.title)

			if result.IsValid != test.expectValid {
				t.Errorf("Expected IsValid=%v, got %v", test.expectValid, result.IsValid)
			}

			for _, expectedIssue := range test.expectedIssues {
				found := false
				for _, issue := range result.Issues {
					if strings.Contains(issue, expectedIssue) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected issue containing '%s' not found in %v", expectedIssue, result.Issues)
				}
			}

			for _, expectedSuggestion := range test.expectedSuggestions {
				found := false
				for _, suggestion := range result.Suggestions {
					if strings.Contains(suggestion, expectedSuggestion) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected suggestion containing '%s' not found in %v", expectedSuggestion, result.Suggestions)
				}
			}
		})
	}
}

func TestDefaultValidator_ValidateNotePath(t *testing.T) {
	validator := notemerger.NewDefaultValidator(notemerger.DefaultConfig())

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "RootNote", path: "note.md"},
		{name: "NestedNote", path: "inbox/2024/note.md"},
		{name: "DotsInName", path: "v1..2.md"},
		{name: "Empty", path: "", expectError: true},
		{name: "Absolute", path: "/vault/note.md", expectError: true},
		{name: "Traversal", path: "inbox/../../note.md", expectError: true},
		{name: "WrongExtension", path: "note.txt", expectError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validator.ValidateNotePath(test.path)
			if test.expectError && err == nil {
				t.Errorf("Expected error for path %q", test.path)
			}
			if !test.expectError && err != nil {
				t.Errorf("Expected no error for path %q, got %v", test.path, err)
			}
		})
	}
}

func TestDefaultValidator_ValidatePath(t *testing.T) {
	validator := notemerger.NewDefaultValidator(notemerger.DefaultConfig())

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "ValidAbsolutePath", path: "/tmp/vault"},
		{name: "EmptyPath", path: "", expectError: true},
		{name: "RelativePath", path: "relative/path", expectError: true},
		{name: "CleanedTraversal", path: "/tmp/../vault"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validator.ValidatePath(test.path)
			if test.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !test.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestDefaultValidator_ValidateConfig(t *testing.T) {
	validator := notemerger.NewDefaultValidator(notemerger.DefaultConfig())

	tests := []struct {
		name        string
		modify      func(*notemerger.Config)
		expectError bool
	}{
		{name: "Default", modify: func(*notemerger.Config) {}},
		{name: "EmptyBackupDir", modify: func(c *notemerger.Config) { c.BackupDir = " " }, expectError: true},
		{name: "AbsoluteBackupDir", modify: func(c *notemerger.Config) { c.BackupDir = "/backup" }, expectError: true},
		{name: "ExtensionWithoutDot", modify: func(c *notemerger.Config) { c.Extension = "md" }, expectError: true},
		{name: "ZeroConcurrency", modify: func(c *notemerger.Config) { c.ReadConcurrency = 0 }, expectError: true},
		{name: "NegativeNotice", modify: func(c *notemerger.Config) { c.NoticeDurationMS = -1 }, expectError: true},
		{name: "BadPattern", modify: func(c *notemerger.Config) { c.FrontMatterPattern = "(" }, expectError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := notemerger.DefaultConfig()
			test.modify(config)
			err := validator.ValidateConfig(config)
			if test.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !test.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}

	if err := validator.ValidateConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}
