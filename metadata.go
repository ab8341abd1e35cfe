package notemerger

import (
	"strconv"
	"strings"
)

const tagsKey = "tags"

// TagSet keeps tags in order of first appearance. Matching is exact and
// case-sensitive once the leading '#' is removed.
type TagSet struct {
	tags []string
	seen map[string]bool
}

func NewTagSet() *TagSet {
	return &TagSet{seen: make(map[string]bool)}
}

func (s *TagSet) Add(tag string) bool {
	tag = normalizeTag(tag)
	if tag == "" || s.seen[tag] {
		return false
	}
	s.seen[tag] = true
	s.tags = append(s.tags, tag)
	return true
}

func (s *TagSet) Tags() []string {
	return append([]string(nil), s.tags...)
}

func (s *TagSet) Len() int {
	return len(s.tags)
}

func normalizeTag(tag string) string {
	return strings.TrimPrefix(tag, "#")
}

// MetadataAccumulator folds the metadata of each note into one ordered entry
// list. The first note to introduce a key keeps it bare; a later note reusing
// the key gets it suffixed with its own 1-based selection position.
type MetadataAccumulator struct {
	entries []MetadataEntry
	keys    map[string]bool
	tags    *TagSet
}

func NewMetadataAccumulator() *MetadataAccumulator {
	return &MetadataAccumulator{
		keys: make(map[string]bool),
		tags: NewTagSet(),
	}
}

func (a *MetadataAccumulator) Add(position int, fields []MetadataEntry) {
	postfix := strconv.Itoa(position)

	for _, field := range fields {
		if strings.EqualFold(field.Key, tagsKey) {
			for _, tag := range field.Value.Values() {
				a.tags.Add(tag)
			}
			continue
		}

		key := field.Key
		if a.keys[key] {
			key += postfix
		}
		a.keys[key] = true
		a.entries = append(a.entries, MetadataEntry{Key: key, Value: field.Value})
	}
}

func (a *MetadataAccumulator) Entries() []MetadataEntry {
	return append([]MetadataEntry(nil), a.entries...)
}

func (a *MetadataAccumulator) Tags() []string {
	return a.tags.Tags()
}

// Render builds the merged metadata block without its delimiters. Tags come
// first as a block sequence, then every entry in insertion order. A property
// without a value renders as `key: null`. An empty accumulator renders to the
// empty string.
func (a *MetadataAccumulator) Render() string {
	var out strings.Builder

	if a.tags.Len() > 0 {
		out.WriteString(tagsKey + ":\n")
		for _, tag := range a.tags.tags {
			out.WriteString(`  - "` + tag + "\"\n")
		}
	}

	for _, entry := range a.entries {
		out.WriteString(entry.Key)
		out.WriteString(": ")
		switch entry.Value.Kind {
		case SequenceValue:
			quoted := make([]string, len(entry.Value.Items))
			for i, item := range entry.Value.Items {
				quoted[i] = `"` + item + `"`
			}
			out.WriteString("[" + strings.Join(quoted, ",") + "]")
		case NullValue:
			out.WriteString("null")
		default:
			out.WriteString(entry.Value.Scalar)
		}
		out.WriteString("\n")
	}

	return out.String()
}
