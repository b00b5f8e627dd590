// Package lines provides a line buffer where every line retains its own
// terminator, so splitting and joining round-trips any input byte-for-byte,
// including files that mix newline conventions or lack a trailing newline.
package lines

import "strings"

// Buffer holds the lines of a source text. Each entry keeps the terminator
// it was split on ("\n", "\r\n" or "\r"); the final entry may have none.
type Buffer struct {
	data []string
}

// Split breaks source into lines, each retaining its terminator.
// Join is the exact inverse for any input.
func Split(source string) *Buffer {
	var data []string
	start := 0
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			data = append(data, source[start:i+1])
			start = i + 1
		case '\r':
			end := i + 1
			if end < len(source) && source[end] == '\n' {
				end++
			}
			data = append(data, source[start:end])
			i = end - 1
			start = end
		}
	}
	if start < len(source) {
		data = append(data, source[start:])
	}
	return &Buffer{data: data}
}

// Join concatenates the lines back into a single string.
func (b *Buffer) Join() string {
	return strings.Join(b.data, "")
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.data) }

// At returns the line at index i, terminator included.
func (b *Buffer) At(i int) string { return b.data[i] }

// Set overwrites the line at index i.
func (b *Buffer) Set(i int, line string) { b.data[i] = line }

// Lines returns the underlying line slice. The slice is shared with the
// buffer; callers must not mutate it.
func (b *Buffer) Lines() []string { return b.data }

// Replace substitutes the half-open line range [start, end) with repl.
func (b *Buffer) Replace(start, end int, repl []string) {
	out := make([]string, 0, len(b.data)-(end-start)+len(repl))
	out = append(out, b.data[:start]...)
	out = append(out, repl...)
	out = append(out, b.data[end:]...)
	b.data = out
}

// Insert places line before index i. Inserting at Len() appends.
func (b *Buffer) Insert(i int, line string) {
	b.data = append(b.data, "")
	copy(b.data[i+1:], b.data[i:])
	b.data[i] = line
}

// Delete removes the half-open line range [start, end).
func (b *Buffer) Delete(start, end int) {
	b.data = append(b.data[:start], b.data[end:]...)
}

// Terminator reports the line terminator used by line i, or "" if the
// line is unterminated.
func (b *Buffer) Terminator(i int) string {
	return terminatorOf(b.data[i])
}

// Newline guesses the buffer's dominant newline convention from the first
// terminated line. Defaults to "\n" for empty or single unterminated input.
func (b *Buffer) Newline() string {
	for _, line := range b.data {
		if t := terminatorOf(line); t != "" {
			return t
		}
	}
	return "\n"
}

func terminatorOf(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	if strings.HasSuffix(line, "\n") || strings.HasSuffix(line, "\r") {
		return line[len(line)-1:]
	}
	return ""
}

// Content returns line i without its terminator.
func (b *Buffer) Content(i int) string {
	line := b.data[i]
	return line[:len(line)-len(terminatorOf(line))]
}

// ApplyIndentation prefixes every line with indentation, the first line
// additionally with startPrefix, and appends endSuffix to the last line.
// Used when splicing re-synthesized replacement text back into a file.
func (b *Buffer) ApplyIndentation(indentation, startPrefix, endSuffix string) {
	for i, line := range b.data {
		if i == 0 {
			b.data[i] = indentation + startPrefix + line
		} else {
			b.data[i] = indentation + line
		}
	}
	if len(b.data) > 0 {
		b.data[len(b.data)-1] += endSuffix
	} else if endSuffix != "" || startPrefix != "" || indentation != "" {
		b.data = append(b.data, indentation+startPrefix+endSuffix)
	}
}

// FindIndent splits a line prefix into its leading whitespace and the
// remainder.
func FindIndent(prefix string) (indentation, rest string) {
	for i := 0; i < len(prefix); i++ {
		if prefix[i] != ' ' && prefix[i] != '\t' {
			return prefix[:i], prefix[i:]
		}
	}
	return prefix, ""
}
