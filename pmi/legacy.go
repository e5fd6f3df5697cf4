package pmi

import (
	"regexp"
	"strings"

	"github.com/wmarlow/caliper/core"
)

// legacyAnnotationTypes lists the presentation occurrence entities that
// carry graphical annotations in files exported without semantic
// tolerance data.
var legacyAnnotationTypes = []string{
	"ANNOTATION_OCCURRENCE",
	"ANNOTATION_CURVE_OCCURRENCE",
	"ANNOTATION_TEXT_OCCURRENCE",
	"ANNOTATION_FILL_AREA_OCCURRENCE",
	"ANNOTATION_SUBFIGURE_OCCURRENCE",
	"DRAUGHTING_ANNOTATION_OCCURRENCE",
	"DRAUGHTING_CALLOUT",
}

var radiusMarkPattern = regexp.MustCompile(`(?i)\bR\s*\d`)

// extractGraphical classifies presentation annotations by name and
// nearby text. Legacy exports flatten dimensions and tolerances into
// these occurrences, so classification is best-effort.
func (e *extractor) extractGraphical() {
	for _, ent := range e.doc.FindByAnyType(legacyAnnotationTypes...) {
		name, _ := ent.GetString(0)
		text := e.nestedText(ent)
		g := GraphicalElement{
			ID:       ent.ID,
			Type:     classifyAnnotation(name, text),
			Text:     text,
			Position: e.itemPosition(ent.ID),
		}
		if v, ok := firstNumber(text); ok {
			g.Value = &v
		} else if v, ok := e.res.NumericValue(ent); ok {
			g.Value = &v
		}
		e.result.GraphicalElements = append(e.result.GraphicalElements, g)
	}
}

// classifyAnnotation maps an occurrence to a dimension kind using its
// name, then falls back to marker symbols in the collected text.
func classifyAnnotation(name, text string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "linear dimension"):
		return "linear"
	case strings.Contains(lower, "radial"):
		return "radius"
	case strings.Contains(lower, "diameter"):
		return "diameter"
	case strings.Contains(lower, "angular"):
		return "angular"
	}
	switch {
	case strings.Contains(text, "Ø"), strings.Contains(text, "⌀"):
		return "diameter"
	case radiusMarkPattern.MatchString(text):
		return "radius"
	case strings.Contains(text, "°"):
		return "angular"
	}
	return "annotation"
}

// nestedText joins the entity's own string attributes with those of each
// directly referenced entity.
func (e *extractor) nestedText(ent *core.Entity) string {
	var parts []string
	collect := func(t *core.Entity) {
		for i := 0; i < t.Len(); i++ {
			if s, ok := t.GetString(i); ok && s != "" {
				parts = append(parts, s)
			}
		}
	}
	collect(ent)
	for _, r := range allRefs(ent.Attrs) {
		if target, ok := e.doc.Get(string(r)); ok {
			collect(target)
		}
	}
	return strings.Join(parts, " ")
}
