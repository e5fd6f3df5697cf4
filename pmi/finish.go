package pmi

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wmarlow/caliper/core"
)

// roughnessPattern matches roughness callouts such as "Ra 3.2" or
// "Rz=12.5" in annotation text.
var roughnessPattern = regexp.MustCompile(`(?i)\b(R[aqyz])\s*[=:]?\s*([0-9]+(?:\.[0-9]+)?)`)

// roughnessParameters are the ISO 4287 parameter names recognized on
// semantic texture entities.
var roughnessParameters = []string{"Ra", "Rz", "Ry", "Rq"}

// laySymbols maps ISO 1302 lay direction names to their drawing symbols.
var laySymbols = map[string]string{
	"PARALLEL":         "=",
	"PERPENDICULAR":    "⊥",
	"CROSSED":          "X",
	"MULTIDIRECTIONAL": "M",
	"CIRCULAR":         "C",
	"RADIAL":           "R",
	"PARTICULATE":      "P",
}

// extractFinishes recovers surface finish callouts: semantic texture and
// machining-allowance entities first, then, when the document carries
// none, roughness values scanned out of annotation text. Scanned texts
// are claimed so they do not reappear as notes.
func (e *extractor) extractFinishes(texts []annotationText, claimed []bool) {
	found := false

	for _, ent := range e.doc.FindByAnyType("SURFACE_TEXTURE_REPRESENTATION", "SURFACE_TEXTURE_PARAMETER") {
		value, ok := e.res.NumericValue(ent)
		if !ok {
			value, ok = e.itemNumericValue(ent)
		}
		if !ok {
			continue
		}
		found = true
		e.result.SurfaceFinishes = append(e.result.SurfaceFinishes, SurfaceFinish{
			ID:             ent.ID,
			RoughnessType:  roughnessType(ent.Raw),
			RoughnessValue: &value,
			Unit:           "μm",
			Lay:            layDirection(ent),
			Text:           firstStringAttr(ent),
			Position:       e.itemPosition(ent.ID),
		})
	}

	for _, ent := range e.doc.FindByType("MACHINING_ALLOWANCE") {
		value, ok := e.res.NumericValue(ent)
		if !ok {
			continue
		}
		found = true
		e.result.SurfaceFinishes = append(e.result.SurfaceFinishes, SurfaceFinish{
			ID:        ent.ID,
			Allowance: &value,
			Text:      firstStringAttr(ent),
			Position:  e.itemPosition(ent.ID),
		})
	}

	if found {
		return
	}

	for i, t := range texts {
		if claimed[i] {
			continue
		}
		m := roughnessPattern.FindStringSubmatch(t.text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		claimed[i] = true
		rType := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		e.result.SurfaceFinishes = append(e.result.SurfaceFinishes, SurfaceFinish{
			ID:             t.id,
			RoughnessType:  rType,
			RoughnessValue: &value,
			Unit:           "μm",
			Text:           t.text,
			Position:       e.itemPosition(t.id),
		})
	}
}

// itemNumericValue resolves a numeric value through the entity's
// referenced representation items. Texture representations wrap their
// measure one reference deep, where the statement-text fallback of
// NumericValue cannot see it.
func (e *extractor) itemNumericValue(ent *core.Entity) (float64, bool) {
	for _, ref := range allRefs(ent.Attrs) {
		item, ok := e.doc.Get(string(ref))
		if !ok {
			continue
		}
		if v, ok := e.res.NumericValue(item); ok {
			return v, true
		}
	}
	return 0, false
}

// roughnessType picks the roughness parameter named in the statement
// text, defaulting to Ra.
func roughnessType(raw string) string {
	for _, p := range roughnessParameters {
		if strings.Contains(raw, p) {
			return p
		}
	}
	return "Ra"
}

// layDirection maps a lay enumeration on the entity to its symbol.
func layDirection(ent *core.Entity) string {
	for i := 0; i < ent.Len(); i++ {
		name, ok := ent.GetEnum(i)
		if !ok {
			continue
		}
		if symbol, ok := laySymbols[strings.ToUpper(name)]; ok {
			return symbol
		}
	}
	return ""
}

