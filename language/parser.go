// Package language parses miniql selection text into an operation kind and
// a nested selection tree.
//
// The grammar is deliberately small: `query { … }`, `mutation { … }`, or a
// bare `{ … }` (which defaults to query), with `#` line comments. Fields are
// bare identifiers; nesting uses braces. Variables, fragments, directives,
// aliases and field arguments are not recognized.
package language

import (
	"strings"

	"github.com/miniql/miniql/errors"
)

// Parse converts raw query text into an operation kind and a selection
// tree. It fails with a syntax error on empty input, an unrecognized
// top-level form, unbalanced braces, or a token that cannot be read as a
// field name.
func Parse(query string) (Operation, SelectionSet, error) {
	src := strings.TrimSpace(stripComments(query))
	if src == "" {
		return "", nil, errors.New("syntax error: empty query")
	}

	op := Query
	switch {
	case hasKeyword(src, "query"):
		src = strings.TrimSpace(src[len("query"):])
	case hasKeyword(src, "mutation"):
		op = Mutation
		src = strings.TrimSpace(src[len("mutation"):])
	case src[0] == '{':
		// Bare selection defaults to a query.
	default:
		return "", nil, errors.New("syntax error: expected query, mutation, or selection set")
	}

	if src == "" || src[0] != '{' {
		return "", nil, errors.New("syntax error: expected selection set")
	}
	end, ok := matchBrace(src, 0)
	if !ok {
		return "", nil, errors.New("syntax error: unbalanced braces")
	}
	if strings.TrimSpace(src[end+1:]) != "" {
		return "", nil, errors.New("syntax error: unexpected text after selection set")
	}

	selections, err := parseSelectionSet(src[1:end])
	if err != nil {
		return "", nil, err
	}
	return op, selections, nil
}

// stripComments removes '#' line comments. The grammar has no string
// literals, so '#' always starts a comment.
func stripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if j := strings.IndexByte(line, '#'); j >= 0 {
			lines[i] = line[:j]
		}
	}
	return strings.Join(lines, "\n")
}

// hasKeyword reports whether src begins with the operation keyword
// (case-insensitive) followed by whitespace or an opening brace.
func hasKeyword(src, kw string) bool {
	if len(src) < len(kw) || !strings.EqualFold(src[:len(kw)], kw) {
		return false
	}
	rest := src[len(kw):]
	if rest == "" {
		return false
	}
	return rest[0] == '{' || isSpace(rest[0])
}

// matchBrace scans from the opening brace at src[open], tracking nesting
// depth, and returns the index of the matching closing brace.
func matchBrace(src string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// parseSelectionSet scans the body of a brace pair left to right with an
// explicit cursor: identifier, optional nested selection, repeat.
func parseSelectionSet(body string) (SelectionSet, error) {
	var out SelectionSet
	index := make(map[string]int)

	pos := 0
	for {
		pos = skipSpace(body, pos)
		if pos >= len(body) {
			break
		}
		name, next := scanIdent(body, pos)
		if name == "" {
			return nil, errors.New("syntax error: unexpected character %q in selection set", body[pos])
		}
		pos = skipSpace(body, next)

		var nested SelectionSet
		if pos < len(body) && body[pos] == '{' {
			end, ok := matchBrace(body, pos)
			if !ok {
				return nil, errors.New("syntax error: unbalanced braces in selection for field %q", name)
			}
			inner, err := parseSelectionSet(body[pos+1 : end])
			if err != nil {
				return nil, err
			}
			nested = inner
			pos = end + 1
		}

		// Last occurrence wins, at the first occurrence's position.
		if i, ok := index[name]; ok {
			out[i].SelectionSet = nested
			continue
		}
		index[name] = len(out)
		out = append(out, &Field{Name: name, SelectionSet: nested})
	}
	return out, nil
}

func skipSpace(src string, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

func scanIdent(src string, pos int) (string, int) {
	start := pos
	for pos < len(src) && isIdent(src[pos]) {
		pos++
	}
	return src[start:pos], pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdent(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
