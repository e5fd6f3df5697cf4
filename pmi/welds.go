package pmi

import (
	"regexp"
	"strconv"
	"strings"
)

// weldClasses is the AWS A2.4 / ISO 2553 joint classification table.
// Entries are tried in order; the first keyword hit wins.
var weldClasses = []struct {
	keywords []string
	name     string
	symbol   string
}{
	{[]string{"FILLET"}, "fillet", "△"},
	{[]string{"SQUARE"}, "square_groove", "‖"},
	{[]string{"V-GROOVE", "V GROOVE", "VEE"}, "v_groove", "V"},
	{[]string{"BEVEL"}, "bevel_groove", "⟋"},
	{[]string{"U-GROOVE", "U GROOVE"}, "u_groove", "⊔"},
	{[]string{"J-GROOVE", "J GROOVE"}, "j_groove", "⌐"},
	{[]string{"PLUG", "SLOT"}, "plug", "⊡"},
	{[]string{"SPOT", "PROJECTION"}, "spot", "○"},
	{[]string{"SEAM"}, "seam", "⊖"},
	{[]string{"BACK WELD", "BACKING"}, "back", "◡"},
	{[]string{"SURFACING", "OVERLAY"}, "surfacing", "∿"},
}

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// extractWelds recovers welding callouts: WELD, WELD_SYMBOL and
// WELDING_PROCESS entities first, then, when the document carries none,
// annotation texts mentioning a weld. Matched texts are claimed so they
// do not reappear as notes.
func (e *extractor) extractWelds(texts []annotationText, claimed []bool) {
	found := false

	for _, ent := range e.doc.FindByAnyType("WELD", "WELD_SYMBOL", "WELDING_PROCESS") {
		found = true
		text := firstStringAttr(ent)
		name, symbol := classifyWeld(text + " " + ent.Raw)

		w := WeldSymbol{
			ID:       ent.ID,
			Type:     name,
			Symbol:   symbol,
			Text:     text,
			Position: e.itemPosition(ent.ID),
		}
		if size, ok := firstNumber(text); ok {
			w.Size = &size
		} else if size, ok := e.res.NumericValue(ent); ok {
			w.Size = &size
		}
		if ent.HasType("WELDING_PROCESS") {
			w.Process = text
		}
		e.result.WeldSymbols = append(e.result.WeldSymbols, w)
	}

	if found {
		return
	}

	for i, t := range texts {
		if claimed[i] {
			continue
		}
		if !strings.Contains(strings.ToUpper(t.text), "WELD") {
			continue
		}
		claimed[i] = true
		name, symbol := classifyWeld(t.text)
		w := WeldSymbol{
			ID:       t.id,
			Type:     name,
			Symbol:   symbol,
			Text:     t.text,
			Position: e.itemPosition(t.id),
		}
		if size, ok := firstNumber(t.text); ok {
			w.Size = &size
		}
		e.result.WeldSymbols = append(e.result.WeldSymbols, w)
	}
}

// classifyWeld matches the text against the joint classification table.
// Unmatched callouts fall back to the generic weld class.
func classifyWeld(text string) (name, symbol string) {
	upper := strings.ToUpper(text)
	for _, class := range weldClasses {
		for _, kw := range class.keywords {
			if strings.Contains(upper, kw) {
				return class.name, class.symbol
			}
		}
	}
	return "weld", ""
}

// firstNumber returns the first number appearing in the text.
func firstNumber(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
