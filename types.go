package notemerger

type Document struct {
	Path     string `json:"path"`
	Basename string `json:"basename"`
	Name     string `json:"name"`
}

type ValueKind int

const (
	ScalarValue ValueKind = iota
	SequenceValue
	NullValue
)

// MetadataValue is a single scalar, an ordered list of scalars, or null for
// a property written with no value at all.
type MetadataValue struct {
	Kind   ValueKind
	Scalar string
	Items  []string
}

func Scalar(value string) MetadataValue {
	return MetadataValue{Kind: ScalarValue, Scalar: value}
}

func Sequence(items ...string) MetadataValue {
	return MetadataValue{Kind: SequenceValue, Items: items}
}

func Null() MetadataValue {
	return MetadataValue{Kind: NullValue}
}

// Values returns the value as a list, a scalar becoming a single element and
// null becoming no elements.
func (v MetadataValue) Values() []string {
	switch v.Kind {
	case SequenceValue:
		return v.Items
	case NullValue:
		return nil
	default:
		return []string{v.Scalar}
	}
}

// MetadataEntry is one key/value pair. Parsed metadata and the merged
// metadata are both kept as ordered entry lists so that repeated keys survive.
type MetadataEntry struct {
	Key   string
	Value MetadataValue
}

type MergeOptions struct {
	ExcludeProperties   bool `json:"exclude_properties"`
	ExcludeEachNoteName bool `json:"exclude_each_note_name"`
	MoveNotes           bool `json:"move_notes"`
	NoBackup            bool `json:"no_backup"`
}

type DispositionResult struct {
	BackupDir string   `json:"backup_dir,omitempty"`
	Moved     []string `json:"moved,omitempty"`
	Deleted   []string `json:"deleted,omitempty"`
	Failed    []string `json:"failed,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

type MergeResult struct {
	OutputPath  string            `json:"output_path"`
	Content     string            `json:"content"`
	Tags        []string          `json:"tags,omitempty"`
	Skipped     []string          `json:"skipped,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	Disposition DispositionResult `json:"disposition"`
}

type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Issues      []string `json:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
