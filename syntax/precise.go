package syntax

import "strings"

// PreciseUnparser splices unchanged nodes back out of the original
// source, so layout, spacing and comments survive a rewrite. Nodes
// that changed, or whose segment no longer parses back to the same
// tree, fall through to the fast printer.
type PreciseUnparser struct {
	Printer
	source  string
	lines   []string
	visited map[int]bool
}

func NewPreciseUnparser(source string) *PreciseUnparser {
	u := &PreciseUnparser{
		source:  source,
		lines:   splitPlain(source),
		visited: make(map[int]bool),
	}
	u.Printer.retrieve = u.maybeRetrieve
	return u
}

func splitPlain(source string) []string {
	parts := strings.Split(source, "\n")
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "\r")
	}
	return parts
}

// maybeRetrieve returns the original text for n when the segment still
// parses back to an identical tree.
func (u *PreciseUnparser) maybeRetrieve(n *Node) (string, bool) {
	segment, ok := Segment(u.source, n.Span)
	if !ok {
		return "", false
	}
	relative := u.dedent(segment, n.Span.Start.Col)
	if !u.verify(n, relative) {
		return "", false
	}
	if n.Kind.IsStatement() {
		relative = u.attachComments(n.Span, relative)
	}
	return u.reindent(relative), true
}

// dedent strips the node's start column off every continuation line,
// leaving only the indentation relative to the node itself.
func (u *PreciseUnparser) dedent(segment string, col int) string {
	parts := strings.Split(segment, "\n")
	for i := 1; i < len(parts); i++ {
		part := parts[i]
		cut := 0
		for cut < col && cut < len(part) && (part[cut] == ' ' || part[cut] == '\t') {
			cut++
		}
		parts[i] = part[cut:]
	}
	return strings.Join(parts, "\n")
}

// reindent re-anchors a relative segment at the printer's current
// indentation level.
func (u *PreciseUnparser) reindent(relative string) string {
	indent := u.indentation()
	if indent == "" || !strings.Contains(relative, "\n") {
		return relative
	}
	parts := strings.Split(relative, "\n")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = indent + parts[i]
		}
	}
	return strings.Join(parts, "\n")
}

func (u *PreciseUnparser) verify(n *Node, relative string) bool {
	if n.Kind.IsStatement() {
		tree, err := Parse(relative + "\n")
		if err != nil {
			return false
		}
		body := tree.List("body")
		return len(body) == 1 && Equal(body[0], n)
	}
	tree, err := Parse("(" + relative + ")\n")
	if err != nil {
		return false
	}
	body := tree.List("body")
	if len(body) != 1 || body[0].Kind != ExprStmt {
		return false
	}
	return Equal(body[0].Child("value"), n)
}

// attachComments pulls in comment lines that sit flush against the
// statement at the same indentation, on either side, plus a trailing
// comment on its final line. Each source line is claimed at most once.
func (u *PreciseUnparser) attachComments(span Span, text string) string {
	col := span.Start.Col
	var before []string
	for line := span.Start.Line - 1; line >= 1; line-- {
		idx := line - 1
		if u.visited[idx] {
			break
		}
		comment, ok := u.commentAt(idx, col)
		if !ok {
			break
		}
		u.visited[idx] = true
		before = append([]string{comment}, before...)
	}
	if trailing, ok := u.trailingComment(span); ok {
		text += trailing
	}
	for idx := span.End.Line; ; idx++ {
		if u.visited[idx] {
			break
		}
		comment, ok := u.commentAt(idx, col)
		if !ok {
			break
		}
		u.visited[idx] = true
		text += "\n" + comment
	}
	if len(before) == 0 {
		return text
	}
	return strings.Join(before, "\n") + "\n" + text
}

// commentAt reports the comment on line idx when the "#" starts at
// exactly the wanted column.
func (u *PreciseUnparser) commentAt(idx, col int) (string, bool) {
	if idx < 0 || idx >= len(u.lines) {
		return "", false
	}
	line := u.lines[idx]
	if col >= len(line) || line[col] != '#' {
		return "", false
	}
	if strings.TrimSpace(line[:col]) != "" {
		return "", false
	}
	return line[col:], true
}

func (u *PreciseUnparser) trailingComment(span Span) (string, bool) {
	idx := span.End.Line - 1
	if idx < 0 || idx >= len(u.lines) || u.visited[idx] {
		return "", false
	}
	rest := u.lines[idx][span.End.Col:]
	trimmed := strings.TrimSpace(rest)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	u.visited[idx] = true
	return rest, true
}
