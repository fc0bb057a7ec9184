// Package rewrites transforms guest source text so that unbounded loops
// cannot starve the cooperative scheduler. The transformation is purely
// line-oriented: it has no notion of string literals or comments, so a loop
// keyword inside either is misidentified. That limitation is part of the
// contract; anything it breaks surfaces as an ordinary guest syntax error.
package rewrites

import "strings"

// yieldStmt is the suspension statement injected as the first statement of
// every block-form loop body.
const yieldStmt = "machine.idle()"

// indentUnit is one standard indent step of the guest dialect.
const indentUnit = "    "

// InjectYields returns src with a suspension statement injected into every
// while/for loop whose body is not on the header line. Sources without loop
// headers are returned unchanged.
func InjectYields(src string) string {
	lines := strings.Split(src, "\n")

	var out []string
	for i, line := range lines {
		if out != nil {
			out = append(out, line)
		}
		if !isLoopHeader(line) {
			continue
		}
		if out == nil {
			out = append(out, lines[:i+1]...)
		}
		out = append(out, bodyIndent(lines, i)+yieldStmt)
	}
	if out == nil {
		return src
	}
	return strings.Join(out, "\n")
}

// isLoopHeader reports whether line opens a block-form loop: it starts with
// the while or for keyword and ends with the block colon. A header carrying
// an inline body after the colon is not a match; such loops are treated as
// bounded and left alone.
func isLoopHeader(line string) bool {
	stmt := strings.TrimLeft(line, " \t")
	rest, ok := strings.CutPrefix(stmt, "while")
	if !ok {
		rest, ok = strings.CutPrefix(stmt, "for")
	}
	if !ok {
		return false
	}
	if rest == "" || isIdentByte(rest[0]) {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(line, " \t\r"), ":")
}

// bodyIndent picks the indentation for the injected line after the header at
// index i: the body's own indentation when the first following non-blank
// line sits deeper than the header, one indent unit past the header
// otherwise.
func bodyIndent(lines []string, i int) string {
	header := leadingWhitespace(lines[i])
	for _, line := range lines[i+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		body := leadingWhitespace(line)
		if len(body) > len(header) {
			return body
		}
		break
	}
	return header + indentUnit
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9'
}
