package core

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// codePages maps the \P?\ directive argument to the ISO 8859 part it selects
// for subsequent \S\ sequences. Part 21 defines alphabets A through I.
var codePages = map[byte]*charmap.Charmap{
	'A': charmap.ISO8859_1,
	'B': charmap.ISO8859_2,
	'C': charmap.ISO8859_3,
	'D': charmap.ISO8859_4,
	'E': charmap.ISO8859_5,
	'F': charmap.ISO8859_6,
	'G': charmap.ISO8859_7,
	'H': charmap.ISO8859_8,
	'I': charmap.ISO8859_9,
}

// DecodeString translates the body of an ISO 10303-21 string literal (the
// text between its quotes) into UTF-8. It handles doubled apostrophes, \\,
// and the \S\, \P?\, \X\, \X2\ and \X4\ control directives. Malformed
// directives pass through verbatim; decoding is best-effort and never fails.
func DecodeString(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	page := charmap.ISO8859_1

	i := 0
	for i < len(s) {
		c := s[i]

		if c == '\'' {
			// Inside a literal an apostrophe is always doubled
			b.WriteByte('\'')
			if i+1 < len(s) && s[i+1] == '\'' {
				i += 2
			} else {
				i++
			}
			continue
		}

		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}

		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, `\\`):
			b.WriteByte('\\')
			i += 2

		case strings.HasPrefix(rest, `\S\`) && len(rest) >= 4:
			b.WriteRune(page.DecodeByte(rest[3] | 0x80))
			i += 4

		case strings.HasPrefix(rest, `\P`) && len(rest) >= 4 && rest[3] == '\\':
			if p, ok := codePages[rest[2]]; ok {
				page = p
			}
			i += 4

		case strings.HasPrefix(rest, `\X2\`):
			consumed, ok := decodeHexRun(&b, rest, 4, decodeUTF16)
			if !ok {
				b.WriteByte(c)
				i++
				continue
			}
			i += consumed

		case strings.HasPrefix(rest, `\X4\`):
			consumed, ok := decodeHexRun(&b, rest, 8, decodeUTF32)
			if !ok {
				b.WriteByte(c)
				i++
				continue
			}
			i += consumed

		case strings.HasPrefix(rest, `\X\`) && len(rest) >= 5:
			v, err := strconv.ParseUint(rest[3:5], 16, 8)
			if err != nil {
				b.WriteByte(c)
				i++
				continue
			}
			b.WriteRune(page.DecodeByte(byte(v)))
			i += 5

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// decodeHexRun consumes a \X2\ or \X4\ run: hex digits in groups of the
// given width, terminated by \X0\. Returns the byte count consumed.
func decodeHexRun(b *strings.Builder, rest string, width int, decode func(*strings.Builder, string, int) bool) (int, bool) {
	end := strings.Index(rest[4:], `\X0\`)
	if end < 0 {
		return 0, false
	}
	hex := rest[4 : 4+end]
	if len(hex)%width != 0 {
		return 0, false
	}
	if !decode(b, hex, width) {
		return 0, false
	}
	return 4 + end + 4, true
}

// decodeUTF16 writes UTF-16BE code units given as 4-digit hex groups.
func decodeUTF16(b *strings.Builder, hex string, width int) bool {
	units := make([]uint16, 0, len(hex)/width)
	for i := 0; i < len(hex); i += width {
		v, err := strconv.ParseUint(hex[i:i+width], 16, 16)
		if err != nil {
			return false
		}
		units = append(units, uint16(v))
	}
	for _, r := range utf16.Decode(units) {
		b.WriteRune(r)
	}
	return true
}

// decodeUTF32 writes UTF-32BE code points given as 8-digit hex groups.
func decodeUTF32(b *strings.Builder, hex string, width int) bool {
	for i := 0; i < len(hex); i += width {
		v, err := strconv.ParseUint(hex[i:i+width], 16, 32)
		if err != nil {
			return false
		}
		b.WriteRune(rune(v))
	}
	return true
}

// RecodeLatin1 converts raw file bytes to UTF-8 when they are not already
// valid UTF-8, reading them as ISO 8859-1. Part 21 files predate UTF-8 and
// older CAD exporters emit the high half of Latin-1 directly. Reports
// whether a conversion took place.
func RecodeLatin1(data []byte) ([]byte, bool) {
	if utf8.Valid(data) {
		return data, false
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data, false
	}
	return out, true
}
