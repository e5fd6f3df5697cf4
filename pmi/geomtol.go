package pmi

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wmarlow/caliper/core"
)

// gdtCharacteristics maps tolerance entity types to their ASME Y14.5
// characteristic names and drawing symbols.
var gdtCharacteristics = []struct {
	entityType string
	name       string
	symbol     string
}{
	{"FLATNESS_TOLERANCE", "flatness", "⏥"},
	{"STRAIGHTNESS_TOLERANCE", "straightness", "⏤"},
	{"CIRCULARITY_TOLERANCE", "circularity", "○"},
	{"CYLINDRICITY_TOLERANCE", "cylindricity", "⌭"},
	{"LINE_PROFILE_TOLERANCE", "profile_line", "⌒"},
	{"SURFACE_PROFILE_TOLERANCE", "profile_surface", "⌓"},
	{"PARALLELISM_TOLERANCE", "parallelism", "∥"},
	{"PERPENDICULARITY_TOLERANCE", "perpendicularity", "⊥"},
	{"ANGULARITY_TOLERANCE", "angularity", "∠"},
	{"POSITION_TOLERANCE", "position", "⌖"},
	{"CONCENTRICITY_TOLERANCE", "concentricity", "◎"},
	{"SYMMETRY_TOLERANCE", "symmetry", "⌯"},
	{"CIRCULAR_RUNOUT_TOLERANCE", "circular_runout", "↗"},
	{"TOTAL_RUNOUT_TOLERANCE", "total_runout", "↗↗"},
	{"COAXIALITY_TOLERANCE", "coaxiality", "◎"},
}

var (
	datumListPattern = regexp.MustCompile(`GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE\s*\(\s*\(([^)]+)\)`)
	entityRefPattern = regexp.MustCompile(`#\d+`)
)

// extractTolerances recovers every GD&T feature control frame. A complex
// instance carrying several characteristic clauses is read once, under
// the first characteristic it matches.
func (e *extractor) extractTolerances() {
	seen := make(map[string]bool)
	for _, char := range gdtCharacteristics {
		for _, ent := range e.doc.FindByType(char.entityType) {
			if seen[ent.ID] {
				continue
			}
			seen[ent.ID] = true
			e.addTolerance(ent, char.name, char.symbol)
		}
	}
}

func (e *extractor) addTolerance(ent *core.Entity, name, symbol string) {
	value := 0.0
	if magRef, ok := ent.GetRef(2); ok {
		if mag, ok := e.doc.Get(string(magRef)); ok {
			if v, ok := e.res.NumericValue(mag); ok {
				value = v
			}
		}
	}

	datums := e.datumReferences(ent)
	modifier := materialModifier(ent)
	zone := zoneModifier(ent)

	geometry := []string{}
	if shapeRef, ok := ent.GetRef(3); ok {
		geometry = e.toleranceGeometry(string(shapeRef))
	}

	e.result.GeometricTolerances = append(e.result.GeometricTolerances, GeometricTolerance{
		ID:           ent.ID,
		Type:         name,
		Symbol:       symbol,
		Value:        value,
		Unit:         e.unit,
		Modifier:     modifier,
		ZoneModifier: zone,
		DatumRefs:    datums,
		Geometry:     geometry,
		Position:     e.itemPosition(ent.ID),
		Text:         formatFrameText(symbol, zone, value, modifier, datums),
	})
}

// datumReferences gathers the datum labels a tolerance references, in
// frame order with duplicates removed. Three sources are consulted: the
// list attributes of a GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE clause,
// the raw statement text of that clause, and a trailing positional list
// on tolerances with five or more attributes.
func (e *extractor) datumReferences(ent *core.Entity) []string {
	labels := []string{}
	seen := make(map[string]bool)
	add := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		labels = append(labels, label)
	}

	if ent.HasType("GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE") {
		for i := 0; i < ent.Len(); i++ {
			list, ok := ent.GetList(i)
			if !ok {
				continue
			}
			for _, ref := range list.Refs() {
				for _, label := range e.datumLabelsFor(ref) {
					add(label)
				}
			}
		}
	}

	if m := datumListPattern.FindStringSubmatch(ent.Raw); m != nil {
		for _, ref := range entityRefPattern.FindAllString(m[1], -1) {
			for _, label := range e.datumLabelsFor(core.Ref(ref)) {
				add(label)
			}
		}
	}

	if ent.Len() >= 5 {
		if list, ok := ent.GetList(ent.Len() - 1); ok {
			for _, ref := range list.Refs() {
				for _, label := range e.datumLabelsFor(ref) {
					add(label)
				}
			}
		}
	}

	return labels
}

// datumLabelsFor resolves one datum reference. A DATUM_SYSTEM referenced
// directly is a whole frame: each member yields its own label, in member
// order. Anything else is a single frame entry.
func (e *extractor) datumLabelsFor(ref core.Ref) []string {
	ent, ok := e.doc.Get(string(ref))
	if !ok {
		return nil
	}
	if ent.HasType("DATUM_SYSTEM") {
		list, ok := ent.GetList(4)
		if !ok {
			return nil
		}
		var labels []string
		for _, member := range list.Refs() {
			visited := map[string]bool{string(ref): true}
			if label := e.compartmentLabel(member, visited); label != "" {
				labels = append(labels, label)
			}
		}
		return labels
	}
	if label := e.compartmentLabel(ref, make(map[string]bool)); label != "" {
		return []string{label}
	}
	return nil
}

// compartmentLabel resolves a single frame entry to its label. A
// DATUM_REFERENCE_COMPARTMENT forwards to its base; a DATUM_SYSTEM at
// this level is a common datum, its member labels joined with "-"; a
// DATUM yields its own label. The visited set bounds recursion through
// the wrapper kinds.
func (e *extractor) compartmentLabel(ref core.Ref, visited map[string]bool) string {
	if visited[string(ref)] {
		return ""
	}
	visited[string(ref)] = true

	ent, ok := e.doc.Get(string(ref))
	if !ok {
		return ""
	}

	if ent.HasType("DATUM_REFERENCE_COMPARTMENT") {
		if base, ok := ent.GetRef(4); ok {
			return e.compartmentLabel(base, visited)
		}
		return ""
	}

	if ent.HasType("DATUM_SYSTEM") {
		list, ok := ent.GetList(4)
		if !ok {
			return ""
		}
		var members []string
		for _, member := range list.Refs() {
			if label := e.compartmentLabel(member, visited); label != "" {
				members = append(members, label)
			}
		}
		return strings.Join(members, "-")
	}

	if ent.HasType("DATUM") {
		return datumLabel(ent)
	}

	return ""
}

// materialModifier detects an MMC or LMC material condition on the
// tolerance, from the modifier attributes of a
// GEOMETRIC_TOLERANCE_WITH_MODIFIERS clause or from the statement text.
func materialModifier(ent *core.Entity) string {
	if ent.HasType("GEOMETRIC_TOLERANCE_WITH_MODIFIERS") {
		for i := 0; i < ent.Len(); i++ {
			name, ok := ent.GetString(i)
			if !ok {
				name, ok = ent.GetEnum(i)
			}
			if !ok || name == "" {
				continue
			}
			upper := strings.ToUpper(name)
			if strings.Contains(upper, "MAXIMUM_MATERIAL") || upper == "MMC" {
				return "Ⓜ"
			}
			if strings.Contains(upper, "LEAST_MATERIAL") || upper == "LMC" {
				return "Ⓛ"
			}
		}
	}

	raw := strings.ToUpper(ent.Raw)
	if strings.Contains(raw, "MAXIMUM_MATERIAL") {
		return "Ⓜ"
	}
	if strings.Contains(raw, "LEAST_MATERIAL") {
		return "Ⓛ"
	}
	return ""
}

// zoneModifier returns the diameter symbol when the tolerance zone is
// cylindrical.
func zoneModifier(ent *core.Entity) string {
	raw := strings.ToUpper(ent.Raw)
	if strings.Contains(raw, "CYLINDRICAL") || strings.Contains(raw, "DIAMETER") {
		return "⌀"
	}
	return ""
}

// formatFrameText renders a feature control frame for display:
// symbol, optional zone modifier, magnitude, optional material modifier,
// then the datum labels separated by frame dividers.
func formatFrameText(symbol, zone string, value float64, modifier string, datums []string) string {
	parts := []string{symbol}
	if zone != "" {
		parts = append(parts, zone)
	}
	parts = append(parts, fmt.Sprintf("%.3f", value))
	if modifier != "" {
		parts = append(parts, modifier)
	}
	if len(datums) > 0 {
		parts = append(parts, "|", strings.Join(datums, " | "))
	}
	return strings.Join(parts, " ")
}
