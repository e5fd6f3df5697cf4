// Package document parses STEP files into an indexed, read-only entity
// store.
//
// [ParseFile], [ParseReader] and [Parse] run the core lexer over the input,
// parse every DATA section statement, and build the id and type indexes
// that the extraction passes query. Parsing is fail-soft: the only fatal
// condition is a missing DATA section, reported as a [core.FormatError].
// Malformed statements are skipped and surfaced through
// [Document.Warnings].
//
// # Lookups
//
// [Document.Get] resolves an entity id with or without the leading '#'.
// [Document.FindByType] matches case-insensitively against every type an
// entity carries, so complex instances are found under each of their
// partial types. [Document.FindByAnyType] unions several type names while
// preserving first-encounter order.
//
// # Metadata
//
// The HEADER section, when present, is parsed best-effort into
// [Document.Header]. The primary length unit is resolved once at load from
// the document's unit entities and exposed as [Document.LengthUnit].
package document
