package notemerger

import "strings"

const sectionSeparator = "\n\n\n"

// Assembler concatenates note bodies in selection order and prepends the
// merged metadata block.
type Assembler struct {
	frontMatter *FrontMatter
	options     MergeOptions
	metadata    *MetadataAccumulator
	body        strings.Builder
}

func NewAssembler(frontMatter *FrontMatter, options MergeOptions) *Assembler {
	return &Assembler{
		frontMatter: frontMatter,
		options:     options,
		metadata:    NewMetadataAccumulator(),
	}
}

// Add appends one note. fields are the note's parsed metadata and position
// is its 1-based place in the selection.
func (a *Assembler) Add(position int, doc Document, content string, fields []MetadataEntry) {
	a.metadata.Add(position, fields)

	if !a.options.ExcludeEachNoteName {
		a.body.WriteString("# " + doc.Basename + "\n")
	}
	if a.frontMatter.HasFrontMatter(content) {
		content = a.frontMatter.Strip(content)
	}
	a.body.WriteString(content)
	a.body.WriteString(sectionSeparator)
}

func (a *Assembler) Metadata() *MetadataAccumulator {
	return a.metadata
}

func (a *Assembler) Content() string {
	block := a.metadata.Render()
	if a.options.ExcludeProperties || block == "" {
		return a.body.String()
	}
	return "---\n" + block + "---\n\n" + a.body.String()
}
