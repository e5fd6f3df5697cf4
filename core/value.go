package core

import (
	"strconv"
	"strings"
)

// Value represents a decoded STEP attribute
type Value interface {
	Kind() Kind
	String() string
}

// Kind represents the type of a decoded attribute value
type Kind int

const (
	KindNull Kind = iota
	KindRef
	KindString
	KindEnum
	KindInt
	KindReal
	KindList
	KindRaw
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindRef:
		return "Ref"
	case KindString:
		return "String"
	case KindEnum:
		return "Enum"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindList:
		return "List"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Null represents an unset ($) or derived (*) attribute
type Null struct{}

func (n Null) Kind() Kind     { return KindNull }
func (n Null) String() string { return "$" }

// Ref represents an entity reference (#12)
type Ref string

func (r Ref) Kind() Kind     { return KindRef }
func (r Ref) String() string { return string(r) }

// String holds the decoded text of a quoted literal
type String string

func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

// Enum represents an enumeration literal (.STEEL.) without its dots
type Enum string

func (e Enum) Kind() Kind     { return KindEnum }
func (e Enum) String() string { return "." + string(e) + "." }

// Int represents an integer attribute
type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a real-number attribute
type Real float64

func (r Real) Kind() Kind     { return KindReal }
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// Raw represents a token that matched no other classification
type Raw string

func (r Raw) Kind() Kind     { return KindRaw }
func (r Raw) String() string { return string(r) }

// List represents a parenthesized aggregate; elements nest arbitrarily
type List []Value

func (l List) Kind() Kind { return KindList }
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Len returns the number of elements in the list
func (l List) Len() int {
	return len(l)
}

// Get retrieves the element at the given index, or nil when out of range
func (l List) Get(index int) Value {
	if index < 0 || index >= len(l) {
		return nil
	}
	return l[index]
}

// GetRef retrieves an entity reference at the given index
func (l List) GetRef(index int) (Ref, bool) {
	v := l.Get(index)
	if v == nil {
		return "", false
	}
	r, ok := v.(Ref)
	return r, ok
}

// GetString retrieves a string at the given index
func (l List) GetString(index int) (String, bool) {
	v := l.Get(index)
	if v == nil {
		return "", false
	}
	s, ok := v.(String)
	return s, ok
}

// GetEnum retrieves an enumeration literal at the given index
func (l List) GetEnum(index int) (Enum, bool) {
	v := l.Get(index)
	if v == nil {
		return "", false
	}
	e, ok := v.(Enum)
	return e, ok
}

// GetInt retrieves an integer at the given index
func (l List) GetInt(index int) (Int, bool) {
	v := l.Get(index)
	if v == nil {
		return 0, false
	}
	i, ok := v.(Int)
	return i, ok
}

// GetReal retrieves a real number at the given index
func (l List) GetReal(index int) (Real, bool) {
	v := l.Get(index)
	if v == nil {
		return 0, false
	}
	r, ok := v.(Real)
	return r, ok
}

// GetFloat retrieves a numeric value (integer or real) at the given index
func (l List) GetFloat(index int) (float64, bool) {
	return AsFloat(l.Get(index))
}

// GetList retrieves a nested list at the given index
func (l List) GetList(index int) (List, bool) {
	v := l.Get(index)
	if v == nil {
		return nil, false
	}
	nested, ok := v.(List)
	return nested, ok
}

// Refs returns every entity reference in the list, in order
func (l List) Refs() []Ref {
	var refs []Ref
	for _, v := range l {
		if r, ok := v.(Ref); ok {
			refs = append(refs, r)
		}
	}
	return refs
}

// AsFloat converts an Int or Real value to float64
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Real:
		return float64(n), true
	default:
		return 0, false
	}
}
