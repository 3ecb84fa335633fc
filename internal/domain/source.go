package domain

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Line is one line of text plus the terminator that ended it. The final line
// of a file without a trailing newline has an empty EOL.
type Line struct {
	Text string
	EOL  string
}

// SourceFile is a dump file read from the input tree.
type SourceFile struct {
	// Path is slash-separated and relative to the input root.
	Path  string
	BOM   bool
	Lines []Line
}

// OutputFile is the converted counterpart of a SourceFile.
type OutputFile struct {
	Path  string
	BOM   bool
	Lines []Line
}

// ParseSource splits data into lines, keeping each line's own terminator so
// that mixed LF, CRLF and lone CR files round-trip exactly.
func ParseSource(path string, data []byte) SourceFile {
	src := SourceFile{Path: path}
	if bytes.HasPrefix(data, utf8BOM) {
		src.BOM = true
		data = data[len(utf8BOM):]
	}

	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			src.Lines = append(src.Lines, Line{Text: string(data)})
			break
		}
		eol := data[i : i+1]
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			eol = data[i : i+2]
		}
		src.Lines = append(src.Lines, Line{Text: string(data[:i]), EOL: string(eol)})
		data = data[i+len(eol):]
	}
	return src
}

// Bytes renders the file content exactly as it will be written.
func (f OutputFile) Bytes() []byte {
	var b strings.Builder
	if f.BOM {
		b.Write(utf8BOM)
	}
	for _, l := range f.Lines {
		b.WriteString(l.Text)
		b.WriteString(l.EOL)
	}
	return []byte(b.String())
}
