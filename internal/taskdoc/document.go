package taskdoc

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDocumentNotFound is returned when the task document does not exist.
var ErrDocumentNotFound = errors.New("task document not found")

// Document is a task document held as an ordered sequence of lines.
type Document struct {
	Path  string
	Lines []string // without line terminators

	// EOL is the terminator of the first line. It is used for lines whose own
	// terminator is unknown.
	EOL string
	// TrailingNewline records whether the last line was terminated.
	TrailingNewline bool

	// eols holds each line's terminator when it parallels Lines.
	eols []string
}

// Load reads the task document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, fmt.Errorf("read task document: %w", err)
	}

	doc := Parse(string(data))
	doc.Path = path
	return doc, nil
}

// Parse splits content into a Document without touching the filesystem.
// Each line keeps its own terminator, so mixed line endings survive a
// round trip.
func Parse(content string) *Document {
	doc := &Document{EOL: "\n"}
	if content == "" {
		return doc
	}

	doc.TrailingNewline = strings.HasSuffix(content, "\n")
	parts := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	doc.Lines = make([]string, len(parts))
	doc.eols = make([]string, len(parts))
	for i, part := range parts {
		switch {
		case i == len(parts)-1 && !doc.TrailingNewline:
			// Unterminated last line; it takes EOL if something is appended.
		case strings.HasSuffix(part, "\r"):
			part = strings.TrimSuffix(part, "\r")
			doc.eols[i] = "\r\n"
		default:
			doc.eols[i] = "\n"
		}
		doc.Lines[i] = part
	}
	if doc.eols[0] != "" {
		doc.EOL = doc.eols[0]
	}
	return doc
}

// String renders the document with its original line endings.
func (d *Document) String() string {
	if len(d.Lines) == 0 {
		return ""
	}
	var b strings.Builder
	for i, line := range d.Lines {
		b.WriteString(line)
		if i < len(d.Lines)-1 || d.TrailingNewline {
			b.WriteString(d.eolAt(i))
		}
	}
	return b.String()
}

func (d *Document) eolAt(i int) string {
	if len(d.eols) == len(d.Lines) && d.eols[i] != "" {
		return d.eols[i]
	}
	if d.EOL == "" {
		return "\n"
	}
	return d.EOL
}

// Save overwrites the document at its path, keeping the existing file mode.
// The write is not atomic; an interrupted write can leave a truncated file.
func (d *Document) Save() error {
	if d.Path == "" {
		return fmt.Errorf("save task document: empty path")
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(d.Path, []byte(d.String()), mode); err != nil {
		return fmt.Errorf("write task document: %w", err)
	}
	return nil
}

// insert places lines before index at, shifting the rest down. Inserted
// lines take the terminator of the line above them.
func (d *Document) insert(at int, lines ...string) {
	if at >= len(d.Lines) {
		// Lines appended past the old end must still be terminated.
		d.TrailingNewline = true
	}
	if len(d.eols) == len(d.Lines) && len(d.Lines) > 0 {
		eol := d.eolAt(max(at-1, 0))
		added := make([]string, len(lines))
		for i := range added {
			added[i] = eol
		}
		d.eols = append(d.eols[:at], append(added, d.eols[at:]...)...)
	} else {
		d.eols = nil
	}
	d.Lines = append(d.Lines[:at], append(append([]string{}, lines...), d.Lines[at:]...)...)
}
