package pmi

import (
	"regexp"
	"strings"

	"github.com/wmarlow/caliper/core"
)

// datumNamePattern pulls a datum letter or ordinal out of a feature
// name such as "Simple Datum.1".
var datumNamePattern = regexp.MustCompile(`(?i)datum[.\s]*(\d+|[A-Z])`)

// extractDatums recovers DATUM and DATUM_FEATURE entities. Results are
// de-duplicated by label across both kinds, keeping the first seen.
func (e *extractor) extractDatums() {
	labels := make(map[string]bool)

	for _, ent := range e.doc.FindByType("DATUM") {
		label := datumLabel(ent)
		if label == "" {
			label = scanDatumLabel(ent)
		}
		if label == "" || labels[label] {
			continue
		}
		labels[label] = true
		e.addDatum(ent, label)
	}

	for _, ent := range e.doc.FindByType("DATUM_FEATURE") {
		label := e.datumFeatureLabel(ent)
		if label == "" || labels[label] {
			continue
		}
		labels[label] = true
		e.addDatum(ent, label)
	}
}

func (e *extractor) addDatum(ent *core.Entity, label string) {
	e.result.Datums = append(e.result.Datums, Datum{
		ID:       ent.ID,
		Label:    label,
		Geometry: e.datumGeometry(ent.ID),
		Position: e.itemPosition(ent.ID),
	})
}

// datumLabel reads the identification attribute of a DATUM entity.
func datumLabel(ent *core.Entity) string {
	if s, ok := ent.GetString(4); ok && s != "" {
		return s
	}
	return ""
}

// scanDatumLabel falls back to any single uppercase letter among the
// entity's string attributes.
func scanDatumLabel(ent *core.Entity) string {
	for i := 0; i < ent.Len(); i++ {
		s, ok := ent.GetString(i)
		if ok && len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
			return s
		}
	}
	return ""
}

// datumFeatureLabel resolves the label of a DATUM_FEATURE: the linked
// DATUM found through SHAPE_ASPECT_RELATIONSHIP, else a letter or
// ordinal pulled from the feature name, where an ordinal N maps to the
// Nth letter.
func (e *extractor) datumFeatureLabel(ent *core.Entity) string {
	for _, sar := range e.doc.FindByType("SHAPE_ASPECT_RELATIONSHIP") {
		related, ok := sar.GetRef(2)
		if !ok || string(related) != ent.ID {
			continue
		}
		relating, ok := sar.GetRef(3)
		if !ok {
			continue
		}
		datum, ok := e.doc.Get(string(relating))
		if !ok || !datum.HasType("DATUM") {
			continue
		}
		if label := datumLabel(datum); label != "" {
			return label
		}
	}

	name, _ := ent.GetString(0)
	m := datumNamePattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	label := m[1]
	if label[0] >= '0' && label[0] <= '9' {
		return ordinalLabel(label)
	}
	return strings.ToUpper(label)
}

// ordinalLabel maps "1".."26" to "A".."Z".
func ordinalLabel(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	if n < 1 || n > 26 {
		return ""
	}
	return string(rune('A' + n - 1))
}
