package notemerger

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

type Validator interface {
	ValidateTitle(title string) *ValidationResult
	ValidateNotePath(notePath string) error
	ValidatePath(path string) error
	ValidateConfig(config *Config) error
}

type DefaultValidator struct {
	config *Config
}

func NewDefaultValidator(config *Config) *DefaultValidator {
	return &DefaultValidator{
		config: config,
	}
}

var reservedTitlePattern = regexp.MustCompile(`[:.¥/*?<>|]`)

// ValidateTitle reports what NormalizeTitle will change about a title.
func (v *DefaultValidator) ValidateTitle(title string) *ValidationResult {
	result := &ValidationResult{
		IsValid:     true,
		Issues:      []string{},
		Suggestions: []string{},
	}

	normalized := NormalizeTitle(title)

	if strings.TrimSpace(title) == "" {
		result.IsValid = false
		result.Issues = append(result.Issues, "Title cannot be empty")
	} else if reservedTitlePattern.MatchString(title) {
		result.IsValid = false
		result.Issues = append(result.Issues, "Title contains characters not allowed in file names (: . ¥ / * ? < > |)")
	}

	if normalized != title {
		result.Suggestions = append(result.Suggestions, fmt.Sprintf("Will be saved as: %s%s", normalized, v.config.Extension))
	}

	return result
}

// ValidateNotePath checks a vault relative note path.
func (v *DefaultValidator) ValidateNotePath(notePath string) error {
	if strings.TrimSpace(notePath) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(notePath, "/") {
		return fmt.Errorf("path must be relative to the vault root")
	}

	for _, part := range strings.Split(notePath, "/") {
		if part == ".." {
			return fmt.Errorf("path contains directory traversal")
		}
	}

	if path.Ext(notePath) != v.config.Extension {
		return fmt.Errorf("not a %s note", v.config.Extension)
	}

	return nil
}

func (v *DefaultValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains directory traversal")
	}

	return nil
}

func (v *DefaultValidator) ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if strings.TrimSpace(config.BackupDir) == "" {
		return fmt.Errorf("backup_dir cannot be empty")
	}

	if strings.HasPrefix(config.BackupDir, "/") || strings.Contains(config.BackupDir, "..") {
		return fmt.Errorf("backup_dir must be relative to the vault root")
	}

	if !strings.HasPrefix(config.Extension, ".") {
		return fmt.Errorf("extension must start with a dot")
	}

	if config.ReadConcurrency < 1 {
		return fmt.Errorf("read_concurrency must be at least 1")
	}

	if config.NoticeDurationMS < 0 {
		return fmt.Errorf("notice_duration_ms cannot be negative")
	}

	if config.FrontMatterPattern == "" {
		return fmt.Errorf("front_matter_pattern cannot be empty")
	}

	if _, err := regexp.Compile(config.FrontMatterPattern); err != nil {
		return fmt.Errorf("invalid front_matter_pattern regex: %w", err)
	}

	return nil
}
