package document

import (
	"strings"

	"github.com/wmarlow/caliper/core"
)

// resolveLengthUnit scans the document's unit entities for the primary
// length unit. CONVERSION_BASED_UNIT wins over SI_UNIT because imperial
// files define the inch in terms of an SI length that would otherwise
// shadow it. Defaults to "mm", by far the most common CAD export unit.
func resolveLengthUnit(d *Document) string {
	for _, e := range d.FindByType("CONVERSION_BASED_UNIT") {
		if name, ok := firstString(e); ok && strings.Contains(strings.ToUpper(name), "INCH") {
			return "in"
		}
	}

	for _, e := range d.FindByType("SI_UNIT") {
		unit, ok := siLengthUnit(e)
		if ok {
			return unit
		}
	}

	return "mm"
}

// siLengthUnit classifies one SI_UNIT entity. Attribute positions shift
// when the unit is part of a complex instance, so the enums are scanned
// rather than indexed.
func siLengthUnit(e *core.Entity) (string, bool) {
	metre := false
	prefix := ""
	for i := 0; i < e.Len(); i++ {
		v, ok := e.GetEnum(i)
		if !ok {
			continue
		}
		switch v {
		case "METRE":
			metre = true
		case "MILLI", "CENTI":
			prefix = v
		}
	}
	if !metre {
		return "", false
	}
	switch prefix {
	case "MILLI":
		return "mm", true
	case "CENTI":
		return "cm", true
	default:
		return "m", true
	}
}

// firstString returns the first string-valued attribute of an entity.
func firstString(e *core.Entity) (string, bool) {
	for i := 0; i < e.Len(); i++ {
		if s, ok := e.GetString(i); ok {
			return s, true
		}
	}
	return "", false
}
