package pmi

import (
	"strings"

	"github.com/wmarlow/caliper/core"
)

// annotationText is a text string lifted from an annotation entity,
// kept with the id of the entity that carried it so downstream passes
// can claim it or attach a position to it.
type annotationText struct {
	id   string
	text string
}

// annotationTexts collects the literal text carried by annotation
// entities. Each entry keeps its source id; passes that consume a text
// (surface finish, weld) mark it claimed so it is not re-emitted as a
// general note.
func (e *extractor) annotationTexts() []annotationText {
	var texts []annotationText
	for _, ent := range e.doc.FindByAnyType("TEXT_LITERAL", "ANNOTATION_TEXT_OCCURRENCE", "ANNOTATION_TEXT") {
		text := firstStringAttr(ent)
		if text == "" {
			continue
		}
		texts = append(texts, annotationText{id: ent.ID, text: text})
	}
	return texts
}

// extractNotes turns the remaining annotation texts into general notes.
// Texts already consumed by the surface finish or weld passes are
// skipped, as are shape-representation names that leak into text
// literals in some exports.
func (e *extractor) extractNotes(texts []annotationText, claimed []bool) {
	for i, t := range texts {
		if claimed[i] {
			continue
		}
		if strings.HasPrefix(t.text, "Shape") {
			continue
		}
		e.result.Notes = append(e.result.Notes, Note{
			ID:       t.id,
			Type:     "text",
			Text:     t.text,
			Position: e.itemPosition(t.id),
		})
	}
}

// firstStringAttr returns the first non-empty string attribute of an
// entity, descending one level into nested lists.
func firstStringAttr(ent *core.Entity) string {
	for i := 0; i < ent.Len(); i++ {
		if s, ok := ent.GetString(i); ok && s != "" {
			return s
		}
		if l, ok := ent.GetList(i); ok {
			for j := 0; j < l.Len(); j++ {
				if s, ok := l.GetString(j); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}
