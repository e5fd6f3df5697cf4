package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Entity is a single instance record from the DATA section. A simple entity
// carries one type; a complex instance carries the types of all its clauses
// in file order, with their attribute lists joined.
type Entity struct {
	// ID is the entity identifier in canonical "#N" form.
	ID string

	// Types holds the uppercased entity type names. Simple entities have
	// exactly one; complex instances list every clause.
	Types []string

	// Attrs holds the decoded attribute values in positional order.
	Attrs List

	// Raw is the normalized statement text the entity was parsed from.
	Raw string
}

// ParseEntity parses one "#id = ..." statement. Statements that do not
// define an entity instance, such as schema records, return an EntityError.
func ParseEntity(stmt string) (*Entity, error) {
	id, rest, err := parseID(stmt)
	if err != nil {
		return nil, err
	}

	e := &Entity{ID: id, Raw: stmt}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") {
		if err := e.parseComplex(rest); err != nil {
			return nil, err
		}
		return e, nil
	}
	if err := e.parseSimple(rest); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseRecord parses a bare "NAME(attrs)" record without an identifier, the
// form used by HEADER section statements.
func ParseRecord(stmt string) (string, List, error) {
	name, rest, ok := readTypeName(stmt)
	if !ok {
		return "", nil, &EntityError{Stmt: clip(stmt), Reason: "missing record name"}
	}
	inner, ok := readGroup(rest)
	if !ok {
		return "", nil, &EntityError{Stmt: clip(stmt), Reason: "unbalanced record"}
	}
	return name, DecodeAttributes(inner), nil
}

// parseID consumes the "#N =" prefix and returns the canonical identifier
// plus the remainder of the statement.
func parseID(stmt string) (string, string, error) {
	s := strings.TrimSpace(stmt)
	if !strings.HasPrefix(s, "#") {
		return "", "", &EntityError{Stmt: clip(stmt), Reason: "statement does not define an entity"}
	}
	i := 1
	for i < len(s) && isDigitByte(s[i]) {
		i++
	}
	if i == 1 {
		return "", "", &EntityError{Stmt: clip(stmt), Reason: "missing entity identifier"}
	}
	n, err := strconv.ParseInt(s[1:i], 10, 64)
	if err != nil {
		return "", "", &EntityError{Stmt: clip(stmt), Reason: "invalid entity identifier"}
	}

	j := skipSpace(s, i)
	if j >= len(s) || s[j] != '=' {
		return "", "", &EntityError{ID: fmt.Sprintf("#%d", n), Reason: "missing '=' after identifier"}
	}
	return fmt.Sprintf("#%d", n), s[j+1:], nil
}

// parseSimple handles "TYPE(attr, attr, ...)".
func (e *Entity) parseSimple(body string) error {
	name, rest, ok := readTypeName(body)
	if !ok {
		return &EntityError{ID: e.ID, Reason: "missing entity type name"}
	}
	inner, ok := readGroup(rest)
	if !ok {
		return &EntityError{ID: e.ID, Reason: "unbalanced attribute list"}
	}
	e.Types = []string{name}
	e.Attrs = DecodeAttributes(inner)
	return nil
}

// parseComplex handles "(TYPE1(...) TYPE2(...) ...)": the external mapping
// of a complex instance. Clause attribute lists are joined in clause order,
// skipping clauses with no attributes of their own.
func (e *Entity) parseComplex(body string) error {
	outer, ok := readGroup(body)
	if !ok {
		return &EntityError{ID: e.ID, Reason: "unbalanced complex instance"}
	}

	var parts []string
	s := outer
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			break
		}
		name, rest, ok := readTypeName(s)
		if !ok {
			return &EntityError{ID: e.ID, Reason: "malformed complex instance clause"}
		}
		inner, ok := readGroup(rest)
		if !ok {
			return &EntityError{ID: e.ID, Reason: "unbalanced clause attribute list"}
		}
		e.Types = append(e.Types, name)
		if t := strings.TrimSpace(inner); t != "" {
			parts = append(parts, t)
		}
		s = rest[groupEnd(rest):]
	}

	if len(e.Types) == 0 {
		return &EntityError{ID: e.ID, Reason: "empty complex instance"}
	}
	e.Attrs = DecodeAttributes(strings.Join(parts, ","))
	return nil
}

// readTypeName consumes a leading entity type name, returning it uppercased
// along with the remainder starting at the '('.
func readTypeName(s string) (string, string, bool) {
	i := skipSpace(s, 0)
	start := i
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	if i == start {
		return "", "", false
	}
	j := skipSpace(s, i)
	if j >= len(s) || s[j] != '(' {
		return "", "", false
	}
	return strings.ToUpper(s[start:i]), s[j:], true
}

// readGroup returns the contents of the balanced parenthesized group that
// starts the string, without the outer parentheses.
func readGroup(s string) (string, bool) {
	end := groupEnd(s)
	if end < 0 {
		return "", false
	}
	return s[1 : end-1], true
}

// groupEnd returns the index just past the ')' matching s[0] == '(', or -1.
func groupEnd(s string) int {
	if len(s) == 0 || s[0] != '(' {
		return -1
	}
	return skipBalanced(s, 0)
}

// ============================================================================
// Entity accessors
// ============================================================================

// Type returns the primary type name: the single type of a simple entity or
// the first clause of a complex instance.
func (e *Entity) Type() string {
	if len(e.Types) == 0 {
		return ""
	}
	return e.Types[0]
}

// HasType reports whether the entity carries the named type. The comparison
// ignores case.
func (e *Entity) HasType(name string) bool {
	for _, t := range e.Types {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// Complex reports whether the entity is a complex instance.
func (e *Entity) Complex() bool {
	return len(e.Types) > 1
}

// Attr returns the attribute at the given position, or nil when out of range.
func (e *Entity) Attr(i int) Value {
	return e.Attrs.Get(i)
}

// Len returns the number of decoded attributes.
func (e *Entity) Len() int {
	return e.Attrs.Len()
}

// GetRef returns the attribute at i as an entity reference.
func (e *Entity) GetRef(i int) (Ref, bool) {
	return e.Attrs.GetRef(i)
}

// GetString returns the attribute at i as a decoded string.
func (e *Entity) GetString(i int) (string, bool) {
	s, ok := e.Attrs.GetString(i)
	return string(s), ok
}

// GetEnum returns the attribute at i as an enumeration name.
func (e *Entity) GetEnum(i int) (string, bool) {
	v, ok := e.Attrs.GetEnum(i)
	return string(v), ok
}

// GetInt returns the attribute at i as an integer.
func (e *Entity) GetInt(i int) (int64, bool) {
	n, ok := e.Attrs.GetInt(i)
	return int64(n), ok
}

// GetFloat returns the attribute at i as a float, accepting integer values.
func (e *Entity) GetFloat(i int) (float64, bool) {
	return e.Attrs.GetFloat(i)
}

// GetList returns the attribute at i as a nested aggregate.
func (e *Entity) GetList(i int) (List, bool) {
	return e.Attrs.GetList(i)
}

// String implements fmt.Stringer.
func (e *Entity) String() string {
	return fmt.Sprintf("%s=%s", e.ID, strings.Join(e.Types, "+"))
}

// ============================================================================
// Attribute decoding
// ============================================================================

// DecodeAttributes splits an attribute list on its top-level commas and
// classifies each token. Tokens that fit no literal form are preserved as
// Raw values, so positional indexing survives exporter quirks.
func DecodeAttributes(text string) List {
	tokens := splitTopLevel(text)
	if len(tokens) == 0 {
		return nil
	}
	out := make(List, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, decodeToken(tok))
	}
	return out
}

// decodeToken classifies a single attribute token.
func decodeToken(tok string) Value {
	tok = strings.TrimSpace(tok)
	switch {
	case tok == "$" || tok == "*":
		return Null{}

	case strings.HasPrefix(tok, "#"):
		if id, ok := NormalizeID(tok); ok {
			return Ref(id)
		}
		return Raw(tok)

	case strings.HasPrefix(tok, "'"):
		return String(DecodeString(stripQuotes(tok)))

	case len(tok) >= 2 && tok[0] == '.' && tok[len(tok)-1] == '.':
		return Enum(tok[1 : len(tok)-1])

	case strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")"):
		return DecodeAttributes(tok[1 : len(tok)-1])
	}

	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(n)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Real(f)
	}
	return Raw(tok)
}

// splitTopLevel cuts on commas at parenthesis depth zero, outside string
// literals. An empty input yields no tokens.
func splitTopLevel(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var tokens []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\'':
			inString = !inString
		case inString:
		case text[i] == '(':
			depth++
		case text[i] == ')':
			depth--
		case text[i] == ',' && depth == 0:
			tokens = append(tokens, text[start:i])
			start = i + 1
		}
	}
	tokens = append(tokens, text[start:])
	return tokens
}

// stripQuotes removes the enclosing apostrophes of a string token. An
// unterminated literal keeps everything after the opening quote.
func stripQuotes(tok string) string {
	if len(tok) >= 2 && tok[len(tok)-1] == '\'' {
		return tok[1 : len(tok)-1]
	}
	return tok[1:]
}

// NormalizeID reduces an entity reference to canonical "#N" form. It accepts
// an optional leading '#' and surrounding whitespace.
func NormalizeID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return "", false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return "", false
	}
	return fmt.Sprintf("#%d", n), true
}

// clip bounds a statement for error reporting.
func clip(s string) string {
	const max = 60
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}
