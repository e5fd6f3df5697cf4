// Package core provides low-level STEP parsing primitives and value types.
//
// This package implements the fundamental building blocks for working with
// ISO 10303-21 exchange structures: section isolation, statement splitting,
// entity instance parsing, attribute decoding, and string literal decoding.
//
// # Value Types
//
// Decoded attribute values are modeled as types satisfying the Value
// interface:
//
//   - [Null] - the unset attribute ($) and the derived marker (*)
//   - [Ref] - a reference to another entity instance (#12)
//   - [String] - a string literal, decoded to UTF-8
//   - [Enum] - an enumeration value (.MILLI.)
//   - [Int] - an integer literal
//   - [Real] - a real number literal
//   - [List] - a parenthesized aggregate of further values
//   - [Raw] - any token that fits no other form, kept verbatim
//
// # Lexing
//
// The [Lexer] type isolates the DATA and HEADER sections of an exchange
// structure and splits them into statements. Comments are stripped and
// whitespace is collapsed outside string literals, so multi-line entity
// definitions arrive as single statements.
//
// # Entities
//
// [ParseEntity] turns one statement into an [Entity], handling both simple
// instances ("#10=CARTESIAN_POINT(...)") and the external mapping of complex
// instances ("#10=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.))"),
// whose clause types are all retained.
//
// # String Decoding
//
// [DecodeString] translates Part 21 string literal bodies to UTF-8,
// including the \S\, \P?\, \X\, \X2\ and \X4\ control directives used by
// CAD exporters for non-ASCII annotation text.
package core
