package notemerger

import (
	"path"
	"strings"
)

const unnamedTitle = "unnamed"

// reservedTitleChars covers characters macOS and Windows refuse in file names.
var reservedTitleChars = strings.NewReplacer(
	":", " ",
	".", " ",
	"¥", " ",
	"/", " ",
	"*", " ",
	"?", " ",
	"<", " ",
	">", " ",
	"|", " ",
)

// NormalizeTitle turns a user title into a file name stem. A title that is
// blank, or only reserved characters, becomes "unnamed".
func NormalizeTitle(title string) string {
	normalized := reservedTitleChars.Replace(title)
	if strings.TrimSpace(normalized) == "" {
		return unnamedTitle
	}
	return normalized
}

// OutputDirectory is the directory of the first note in basename order, so
// the destination does not depend on how the user reordered the selection.
// Notes at the vault root yield the empty string.
func OutputDirectory(selection *Selection) string {
	sorted := selection.Sorted()
	if len(sorted) == 0 {
		return ""
	}

	dir := path.Dir(sorted[0].Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

func OutputPath(selection *Selection, title, extension string) string {
	name := NormalizeTitle(title) + extension
	if dir := OutputDirectory(selection); dir != "" {
		return dir + "/" + name
	}
	return name
}
