package notemerger

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BackupDir          string `yaml:"backup_dir"`
	TitlePrefix        string `yaml:"title_prefix"`
	Extension          string `yaml:"extension"`
	NoticeDurationMS   int    `yaml:"notice_duration_ms"`
	ReadConcurrency    int    `yaml:"read_concurrency"`
	FrontMatterPattern string `yaml:"front_matter_pattern"`
}

func DefaultConfig() *Config {
	return &Config{
		BackupDir:          "_merged_notes",
		TitlePrefix:        "Merged - ",
		Extension:          ".md",
		NoticeDurationMS:   3000,
		ReadConcurrency:    8,
		FrontMatterPattern: `\A---\n(?:((?s:.*?))\n)??---(?:\n|\z)`,
	}
}

func (c *Config) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeDurationMS) * time.Millisecond
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}
