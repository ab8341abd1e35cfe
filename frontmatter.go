package notemerger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedValue = errors.New("unsupported metadata value")

// FrontMatter slices the `---` delimited metadata block off the top of a note
// and parses the minimal YAML subset notes carry there.
type FrontMatter struct {
	pattern *regexp.Regexp
}

func NewFrontMatter(config *Config) (*FrontMatter, error) {
	pattern, err := regexp.Compile(config.FrontMatterPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid front matter pattern: %w", err)
	}
	if pattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("front matter pattern must capture the block body")
	}

	return &FrontMatter{pattern: pattern}, nil
}

// HasFrontMatter reports whether content opens with a delimiter line that is
// closed by a second delimiter line. An unclosed opening delimiter does not count.
func (f *FrontMatter) HasFrontMatter(content string) bool {
	return f.pattern.MatchString(content)
}

// ExtractBlock returns the text between the first pair of delimiter lines.
func (f *FrontMatter) ExtractBlock(content string) (string, bool) {
	match := f.pattern.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Strip removes the delimited block, both delimiter lines included.
func (f *FrontMatter) Strip(content string) string {
	loc := f.pattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}

// Parse extracts, normalizes and decodes the metadata block of content.
// Content without a block yields no entries.
func (f *FrontMatter) Parse(content string) ([]MetadataEntry, error) {
	block, ok := f.ExtractBlock(content)
	if !ok {
		return nil, nil
	}
	return ParseMetadata(NormalizeFrontMatter(block))
}

// NormalizeFrontMatter rewrites comma separated inline arrays such as
// `key: [a, b]` or `key: a, b` into block sequences the YAML decoder reads
// as lists. Lines without a comma pass through unchanged.
func NormalizeFrontMatter(block string) string {
	var out strings.Builder

	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		index := strings.Index(line, ":")
		if !strings.Contains(line, ",") || index == -1 {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}

		key := strings.TrimSpace(line[:index])
		value := strings.TrimSpace(line[index+1:])

		out.WriteString(key)
		out.WriteString(":")
		for _, item := range strings.Split(value, ",") {
			item = strings.Trim(strings.TrimSpace(item), `[]"`)
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			out.WriteString("\n  - \"")
			out.WriteString(quoteEscaper.Replace(item))
			out.WriteString("\"")
		}
		out.WriteString("\n")
	}

	return out.String()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ParseMetadata decodes normalized front matter into entries in document
// order. Keys whose values are mappings are left out and reported through an
// error wrapping ErrUnsupportedValue alongside the entries that did decode.
func ParseMetadata(normalized string) ([]MetadataEntry, error) {
	if strings.TrimSpace(normalized) == "" {
		return nil, nil
	}

	var document yaml.Node
	if err := yaml.Unmarshal([]byte(normalized), &document); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(document.Content) == 0 {
		return nil, nil
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter is not a mapping: %w", ErrUnsupportedValue)
	}

	var entries []MetadataEntry
	var rejected []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value, err := nodeValue(root.Content[i+1])
		if err != nil {
			rejected = append(rejected, key)
			continue
		}
		entries = append(entries, MetadataEntry{Key: key, Value: value})
	}

	if len(rejected) > 0 {
		return entries, fmt.Errorf("keys %s: %w", strings.Join(rejected, ", "), ErrUnsupportedValue)
	}
	return entries, nil
}

func nodeValue(node *yaml.Node) (MetadataValue, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.ScalarNode:
		if isNull(node) {
			return Null(), nil
		}
		return Scalar(node.Value), nil
	case yaml.SequenceNode:
		items, err := sequenceLeaves(node)
		if err != nil {
			return MetadataValue{}, err
		}
		return Sequence(items...), nil
	default:
		return MetadataValue{}, ErrUnsupportedValue
	}
}

// sequenceLeaves flattens nested sequences into their scalar leaves.
func sequenceLeaves(node *yaml.Node) ([]string, error) {
	items := []string{}
	for _, child := range node.Content {
		if child.Kind == yaml.AliasNode {
			child = child.Alias
		}
		switch child.Kind {
		case yaml.ScalarNode:
			if isNull(child) {
				continue
			}
			items = append(items, child.Value)
		case yaml.SequenceNode:
			nested, err := sequenceLeaves(child)
			if err != nil {
				return nil, err
			}
			items = append(items, nested...)
		default:
			return nil, ErrUnsupportedValue
		}
	}
	return items, nil
}

func isNull(node *yaml.Node) bool {
	return node.ShortTag() == "!!null"
}
