package pmi

import (
	"fmt"
	"math"
	"strings"

	"github.com/wmarlow/caliper/core"
)

// dimensionValue carries the resolved value and tolerance of one
// dimension. Bounds stay nil when the document states none.
type dimensionValue struct {
	nominal *float64
	upper   *float64
	lower   *float64
	tolType string
	class   string
}

// tolerance converts the resolved bounds to a Tolerance, or nil when
// neither bound was stated.
func (v dimensionValue) tolerance() *Tolerance {
	if v.upper == nil && v.lower == nil {
		return nil
	}
	typ := v.tolType
	if typ == "" {
		typ = "symmetric"
	}
	return &Tolerance{Type: typ, Upper: v.upper, Lower: v.lower}
}

// extractDimensions recovers DIMENSIONAL_SIZE, DIMENSIONAL_LOCATION and
// ANGULAR_LOCATION dimensions with their values, tolerances and geometry.
func (e *extractor) extractDimensions() {
	for _, ent := range e.doc.FindByType("DIMENSIONAL_SIZE") {
		e.addDimension(e.dimensionalSize(ent))
	}
	for _, ent := range e.doc.FindByType("DIMENSIONAL_LOCATION") {
		e.addDimension(e.dimensionalLocation(ent, "linear"))
	}
	for _, ent := range e.doc.FindByType("ANGULAR_LOCATION") {
		e.addDimension(e.dimensionalLocation(ent, "angular"))
	}
}

// addDimension records the dimension with its position: presentation
// placement when one exists, otherwise the leader anchor of the
// associated geometry. Anchors do not count toward the placement total
// that gates the document-wide fallback.
func (e *extractor) addDimension(d Dimension) {
	if p, ok := e.position(d.ID); ok {
		e.positioned++
		d.Position = p
	} else if p, ok := e.leaderAnchor(d.Geometry); ok {
		d.Position = p
	}
	e.result.Dimensions = append(e.result.Dimensions, d)
}

// dimensionalSize reads a DIMENSIONAL_SIZE(applies_to, name) entity. The
// name distinguishes diameter from radius; radius is the default.
func (e *extractor) dimensionalSize(ent *core.Entity) Dimension {
	dimType := "radius"
	if name, ok := ent.GetString(1); ok && strings.Contains(strings.ToLower(name), "diameter") {
		dimType = "diameter"
	}

	v := e.dimensionValue(ent.ID)

	geometry := []string{}
	if shape, ok := ent.GetRef(0); ok {
		geometry = e.associatedGeometry(string(shape))
	}

	return Dimension{
		ID:        ent.ID,
		Type:      dimType,
		Value:     nominalOrZero(v),
		Unit:      e.unit,
		Tolerance: v.tolerance(),
		Class:     v.class,
		Geometry:  geometry,
		Text:      formatDimensionText(dimType, v, e.unit),
	}
}

// dimensionalLocation reads a DIMENSIONAL_LOCATION or ANGULAR_LOCATION
// entity, which relate two shape aspects at positions 2 and 3.
func (e *extractor) dimensionalLocation(ent *core.Entity, dimType string) Dimension {
	v := e.dimensionValue(ent.ID)

	var shapes []string
	if s, ok := ent.GetRef(2); ok {
		shapes = append(shapes, string(s))
	}
	if s, ok := ent.GetRef(3); ok {
		shapes = append(shapes, string(s))
	}

	unit := e.unit
	textUnit := e.unit
	if dimType == "angular" {
		unit = "deg"
		textUnit = "°"
	}

	return Dimension{
		ID:        ent.ID,
		Type:      dimType,
		Value:     nominalOrZero(v),
		Unit:      unit,
		Tolerance: v.tolerance(),
		Class:     v.class,
		Geometry:  e.associatedGeometry(shapes...),
		Text:      formatDimensionText(dimType, v, textUnit),
	}
}

func nominalOrZero(v dimensionValue) float64 {
	if v.nominal == nil {
		return 0
	}
	return *v.nominal
}

// dimensionValue resolves the value and tolerance chain of a dimension:
// DIMENSIONAL_CHARACTERISTIC_REPRESENTATION to the measure items of its
// SHAPE_DIMENSION_REPRESENTATION, then PLUS_MINUS_TOLERANCE entities
// naming the dimension, whose bounds override the representation's.
func (e *extractor) dimensionValue(dimID string) dimensionValue {
	var v dimensionValue

	for _, dcr := range e.doc.FindByType("DIMENSIONAL_CHARACTERISTIC_REPRESENTATION") {
		dim, ok := dcr.GetRef(0)
		if !ok || string(dim) != dimID {
			continue
		}
		sdrRef, ok := dcr.GetRef(1)
		if !ok {
			continue
		}
		if sdr, ok := e.doc.Get(string(sdrRef)); ok {
			e.readShapeDimension(sdr, &v)
			break
		}
	}

	for _, pm := range e.doc.FindByType("PLUS_MINUS_TOLERANCE") {
		dim, ok := pm.GetRef(1)
		if !ok || string(dim) != dimID {
			continue
		}
		tolRef, ok := pm.GetRef(0)
		if !ok {
			continue
		}
		tol, ok := e.doc.Get(string(tolRef))
		if !ok {
			continue
		}
		if tol.HasType("LIMITS_AND_FITS") {
			v.class = fitClass(tol)
			continue
		}
		upper, lower := e.readToleranceValue(tol)
		if upper != nil {
			v.upper = upper
		}
		if lower != nil {
			v.lower = lower
		}
		v.tolType = "plus_minus"
	}

	return v
}

// readShapeDimension reads the measure items of a
// SHAPE_DIMENSION_REPRESENTATION('', (items...), context). Each item is
// classified by the representation item name carried in its statement:
// nominal value, upper limit or lower limit. Unnamed items supply the
// nominal when none was seen yet.
func (e *extractor) readShapeDimension(sdr *core.Entity, v *dimensionValue) {
	var items []core.Ref
	if list, ok := sdr.GetList(1); ok {
		items = list.Refs()
	} else if ref, ok := sdr.GetRef(1); ok {
		items = []core.Ref{ref}
	}

	for _, ref := range items {
		measure, ok := e.doc.Get(string(ref))
		if !ok {
			continue
		}
		value, ok := e.res.NumericValue(measure)
		if !ok {
			continue
		}

		raw := strings.ToLower(measure.Raw)
		switch {
		case strings.Contains(raw, "nominal value"):
			v.nominal = &value
		case strings.Contains(raw, "upper limit"):
			v.upper = &value
			v.tolType = "limits"
		case strings.Contains(raw, "lower limit"):
			v.lower = &value
			v.tolType = "limits"
		default:
			if v.nominal == nil {
				v.nominal = &value
			}
		}
	}
}

// readToleranceValue reads a TOLERANCE_VALUE(upper, lower) entity whose
// bounds are references to measure entities.
func (e *extractor) readToleranceValue(tol *core.Entity) (upper, lower *float64) {
	if ref, ok := tol.GetRef(0); ok {
		if ent, ok := e.doc.Get(string(ref)); ok {
			if value, ok := e.res.NumericValue(ent); ok {
				upper = &value
			}
		}
	}
	if ref, ok := tol.GetRef(1); ok {
		if ent, ok := e.doc.Get(string(ref)); ok {
			if value, ok := e.res.NumericValue(ent); ok {
				lower = &value
			}
		}
	}
	return upper, lower
}

// fitClass joins the form, zone and grade strings of a LIMITS_AND_FITS
// entity into an ISO 286 class such as "H7".
func fitClass(tol *core.Entity) string {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		if s, ok := tol.GetString(i); ok {
			b.WriteString(strings.TrimSpace(s))
		}
	}
	return b.String()
}

// formatDimensionText renders the display callout: type prefix, nominal
// to two decimals, tolerance band and unit. No nominal means no text.
func formatDimensionText(dimType string, v dimensionValue, unit string) string {
	if v.nominal == nil {
		return ""
	}

	var b strings.Builder
	switch dimType {
	case "diameter":
		b.WriteString("⌀")
	case "radius":
		b.WriteString("R")
	}
	fmt.Fprintf(&b, "%.2f", *v.nominal)

	switch {
	case v.upper != nil && v.lower != nil:
		if math.Abs(*v.upper) == math.Abs(*v.lower) {
			fmt.Fprintf(&b, " ±%.2f", math.Abs(*v.upper))
		} else {
			fmt.Fprintf(&b, " +%.2f/%.2f", *v.upper, *v.lower)
		}
	case v.upper != nil:
		fmt.Fprintf(&b, " +%.2f", *v.upper)
	case v.lower != nil:
		fmt.Fprintf(&b, " %.2f", *v.lower)
	}

	b.WriteString(" ")
	b.WriteString(unit)
	return b.String()
}
