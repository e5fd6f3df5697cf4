package core

import "strings"

// Lexer splits the exchange structure of a Part 21 file into entity
// statements. It isolates the DATA section, strips comments, folds physical
// lines back together and cuts on the ';' terminators, all while leaving
// string literals untouched.
type Lexer struct {
	src string
}

// NewLexer returns a lexer over the raw file content.
func NewLexer(data []byte) *Lexer {
	return &Lexer{src: string(data)}
}

// DataStatements returns the statements of the DATA section, one per entity
// or schema record, with terminators removed and whitespace collapsed.
// A file without a DATA section is not a STEP exchange structure.
func (l *Lexer) DataStatements() ([]string, error) {
	body, ok := sectionBody(stripComments(l.src), "DATA")
	if !ok {
		return nil, &FormatError{Reason: "no DATA section found"}
	}
	return splitStatements(normalize(body)), nil
}

// HeaderStatements returns the statements of the HEADER section, or nil if
// the file has none. Header records are advisory, so this never fails.
func (l *Lexer) HeaderStatements() []string {
	body, ok := sectionBody(stripComments(l.src), "HEADER")
	if !ok {
		return nil
	}
	return splitStatements(normalize(body))
}

// ============================================================================
// Section scanning
// ============================================================================

// sectionBody extracts the text between "NAME;" and the next "ENDSEC"
// outside string literals. The keyword match is case-insensitive and must
// sit on a token boundary. Second-edition section parameters, as in
// "DATA(...);", are skipped.
func sectionBody(src, name string) (string, bool) {
	open := scanKeyword(src, 0, name)
	if open < 0 {
		return "", false
	}

	// Step past optional parameters and the opening terminator.
	i := open + len(name)
	i = skipSpace(src, i)
	if i < len(src) && src[i] == '(' {
		if i = skipBalanced(src, i); i < 0 {
			return "", false
		}
		i = skipSpace(src, i)
	}
	if i >= len(src) || src[i] != ';' {
		return "", false
	}
	i++

	end := scanKeyword(src, i, "ENDSEC")
	if end < 0 {
		return "", false
	}
	return src[i:end], true
}

// scanKeyword finds the next case-insensitive occurrence of word at or after
// start, outside string literals and on a token boundary. Returns -1 if the
// word does not occur.
func scanKeyword(src string, start int, word string) int {
	inString := false
	for i := start; i < len(src); i++ {
		if src[i] == '\'' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if !matchFold(src, i, word) {
			continue
		}
		if i > 0 && isIdentByte(src[i-1]) {
			continue
		}
		if after := i + len(word); after < len(src) && isIdentByte(src[after]) {
			continue
		}
		return i
	}
	return -1
}

// skipBalanced advances past a parenthesized group starting at src[i] == '(',
// returning the index just after the matching ')' or -1 if unbalanced.
func skipBalanced(src string, i int) int {
	depth := 0
	inString := false
	for ; i < len(src); i++ {
		switch {
		case src[i] == '\'':
			inString = !inString
		case inString:
		case src[i] == '(':
			depth++
		case src[i] == ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// ============================================================================
// Statement shaping
// ============================================================================

// stripComments removes /* ... */ runs outside string literals. An
// unterminated comment swallows the rest of the input.
func stripComments(src string) string {
	if !strings.Contains(src, "/*") {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\'' {
			inString = !inString
		}
		if !inString && c == '/' && i+1 < len(src) && src[i+1] == '*' {
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				break
			}
			// A comment separates tokens, so it folds to a space.
			b.WriteByte(' ')
			i += 2 + end + 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// normalize joins physical lines and collapses whitespace runs to a single
// space outside string literals. Literal content passes through verbatim.
func normalize(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	inString := false
	space := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\'' {
			inString = !inString
		}
		if !inString && isSpaceByte(c) {
			space = true
			continue
		}
		if space {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitStatements cuts on ';' outside string literals and drops empties.
func splitStatements(src string) []string {
	var stmts []string
	inString := false
	start := 0
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '\'':
			inString = !inString
		case !inString && src[i] == ';':
			if s := strings.TrimSpace(src[start:i]); s != "" {
				stmts = append(stmts, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(src[start:]); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

// ============================================================================
// Byte classification
// ============================================================================

func matchFold(src string, i int, word string) bool {
	if i+len(word) > len(src) {
		return false
	}
	return strings.EqualFold(src[i:i+len(word)], word)
}

func skipSpace(src string, i int) int {
	for i < len(src) && isSpaceByte(src[i]) {
		i++
	}
	return i
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
