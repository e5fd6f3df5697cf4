package pmi

import (
	"github.com/wmarlow/caliper/core"
	"github.com/wmarlow/caliper/document"
	"github.com/wmarlow/caliper/resolver"
)

// Result aggregates every PMI category recovered from one document. All
// category slices are present even when empty, so the JSON form always
// carries the full shape.
type Result struct {
	// Format is the detected application protocol, "AP242" or "AP203/AP214".
	Format string `json:"format" yaml:"format"`

	// Dimensions are size, location and angle dimensions.
	Dimensions []Dimension `json:"dimensions" yaml:"dimensions"`

	// GeometricTolerances are the GD&T feature control frames.
	GeometricTolerances []GeometricTolerance `json:"geometric_tolerances" yaml:"geometric_tolerances"`

	// Datums are the labeled reference features tolerances measure against.
	Datums []Datum `json:"datums" yaml:"datums"`

	// SurfaceFinishes are roughness and machining-allowance callouts.
	SurfaceFinishes []SurfaceFinish `json:"surface_finishes" yaml:"surface_finishes"`

	// WeldSymbols are welding callouts classified by joint type.
	WeldSymbols []WeldSymbol `json:"weld_symbols" yaml:"weld_symbols"`

	// Notes are plain text annotations not claimed by another category.
	Notes []Note `json:"notes" yaml:"notes"`

	// GraphicalElements are annotations reconstructed from presentation
	// entities in legacy files that carry no semantic PMI.
	GraphicalElements []GraphicalElement `json:"graphical_pmi" yaml:"graphical_pmi"`

	// AnnotationPlanes are the planes annotations are drawn on.
	AnnotationPlanes []AnnotationPlane `json:"annotation_planes" yaml:"annotation_planes"`

	// Statistics summarizes the document and the extraction run.
	Statistics Statistics `json:"statistics" yaml:"statistics"`

	// Warnings reports non-fatal conditions met during extraction.
	Warnings []core.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Tolerance is a dimensional tolerance band. Either bound may be absent.
type Tolerance struct {
	// Type is "plus_minus", "limits" or "symmetric".
	Type  string   `json:"type" yaml:"type"`
	Upper *float64 `json:"upper" yaml:"upper"`
	Lower *float64 `json:"lower" yaml:"lower"`
}

// Dimension is a size, location or angle dimension.
type Dimension struct {
	// ID is the originating entity id.
	ID string `json:"id" yaml:"id"`

	// Type is "linear", "angular", "radius" or "diameter".
	Type string `json:"type" yaml:"type"`

	// Value is the nominal value, zero when no measure resolved.
	Value float64 `json:"value" yaml:"value"`

	// Unit is the measurement unit, "deg" for angular dimensions and the
	// document length unit otherwise.
	Unit string `json:"unit" yaml:"unit"`

	// Tolerance is the applied tolerance band, if any.
	Tolerance *Tolerance `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	// Class is an ISO 286 fit class such as "H7", if one applies.
	Class string `json:"fit_class,omitempty" yaml:"fit_class,omitempty"`

	// Geometry lists the ids of the geometric elements the dimension
	// attaches to.
	Geometry []string `json:"associated_geometry" yaml:"associated_geometry"`

	// Position is the annotation anchor in model space.
	Position resolver.Point `json:"position" yaml:"position"`

	// Text is the formatted callout, such as "⌀25.00 ±0.10 mm".
	Text string `json:"text" yaml:"text"`
}

// GeometricTolerance is one GD&T feature control frame.
type GeometricTolerance struct {
	ID string `json:"id" yaml:"id"`

	// Type is the characteristic name, such as "flatness" or "position".
	Type string `json:"type" yaml:"type"`

	// Symbol is the characteristic's drawing symbol.
	Symbol string `json:"symbol" yaml:"symbol"`

	// Value is the tolerance zone magnitude.
	Value float64 `json:"value" yaml:"value"`

	Unit string `json:"unit" yaml:"unit"`

	// Modifier is a material condition modifier, "Ⓜ" or "Ⓛ", when present.
	Modifier string `json:"modifier,omitempty" yaml:"modifier,omitempty"`

	// ZoneModifier is "⌀" when the tolerance zone is cylindrical.
	ZoneModifier string `json:"zone_modifier,omitempty" yaml:"zone_modifier,omitempty"`

	// DatumRefs are the referenced datum labels in frame order.
	DatumRefs []string `json:"datum_refs" yaml:"datum_refs"`

	Geometry []string       `json:"associated_geometry" yaml:"associated_geometry"`
	Position resolver.Point `json:"position" yaml:"position"`

	// Text is the formatted frame, such as "⌖ ⌀ 0.100 Ⓜ | A | B".
	Text string `json:"text" yaml:"text"`
}

// Datum is a labeled datum feature.
type Datum struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label" yaml:"label"`
	Geometry []string       `json:"associated_geometry" yaml:"associated_geometry"`
	Position resolver.Point `json:"position" yaml:"position"`
}

// SurfaceFinish is a surface texture or machining-allowance callout.
type SurfaceFinish struct {
	ID string `json:"id" yaml:"id"`

	// RoughnessType is the parameter name: "Ra", "Rz", "Ry" or "Rq".
	RoughnessType string `json:"roughness_type,omitempty" yaml:"roughness_type,omitempty"`

	RoughnessValue *float64 `json:"roughness_value" yaml:"roughness_value"`

	// Unit is the roughness unit, micrometres.
	Unit string `json:"roughness_unit,omitempty" yaml:"roughness_unit,omitempty"`

	// Allowance is a machining allowance in the document length unit.
	Allowance *float64 `json:"machining_allowance,omitempty" yaml:"machining_allowance,omitempty"`

	// Lay is the lay direction symbol, such as "=" or "⊥".
	Lay string `json:"lay_symbol,omitempty" yaml:"lay_symbol,omitempty"`

	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Position resolver.Point `json:"position" yaml:"position"`
}

// WeldSymbol is a welding callout.
type WeldSymbol struct {
	ID string `json:"id" yaml:"id"`

	// Type is the joint classification, such as "fillet"; "weld" when the
	// callout could not be classified.
	Type string `json:"type" yaml:"type"`

	// Symbol is the drawing symbol for the joint type.
	Symbol string `json:"symbol" yaml:"symbol"`

	// Size is the weld size when one was stated.
	Size *float64 `json:"size,omitempty" yaml:"size,omitempty"`

	// Process names the welding process for process callouts.
	Process string `json:"process,omitempty" yaml:"process,omitempty"`

	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Position resolver.Point `json:"position" yaml:"position"`
}

// Note is a free text annotation.
type Note struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Text     string         `json:"text" yaml:"text"`
	Position resolver.Point `json:"position" yaml:"position"`
}

// GraphicalElement is an annotation reconstructed from presentation
// entities. Legacy files carry all their PMI this way.
type GraphicalElement struct {
	ID string `json:"id" yaml:"id"`

	// Type is "linear", "angular", "radius", "diameter" or "annotation".
	Type string `json:"type" yaml:"type"`

	// Value is the first number recovered from the annotation text.
	Value *float64 `json:"value" yaml:"value"`

	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Position resolver.Point `json:"position" yaml:"position"`
}

// AnnotationPlane is a plane annotations are presented on.
type AnnotationPlane struct {
	ID               string              `json:"id" yaml:"id"`
	Name             string              `json:"name,omitempty" yaml:"name,omitempty"`
	Origin           *resolver.Point     `json:"origin,omitempty" yaml:"origin,omitempty"`
	Normal           *resolver.Direction `json:"normal,omitempty" yaml:"normal,omitempty"`
	WritingDirection *resolver.Direction `json:"writing_direction,omitempty" yaml:"writing_direction,omitempty"`
}

// Statistics summarizes the parsed document and the extraction run.
type Statistics struct {
	// TotalEntities is the number of entity instances in the DATA section.
	TotalEntities int `json:"total_entities" yaml:"total_entities"`

	// UniqueTypes is the number of distinct entity type names.
	UniqueTypes int `json:"unique_types" yaml:"unique_types"`

	// PMIEntities counts instances of the PMI-related entity types.
	PMIEntities int `json:"pmi_entities" yaml:"pmi_entities"`

	// TopTypes lists the most frequent entity types, highest count first.
	TopTypes []document.TypeCount `json:"top_types" yaml:"top_types"`

	// Counts holds the per-category result sizes.
	Counts CategoryCounts `json:"counts" yaml:"counts"`

	// ParseTimeMS is the DATA section parse time in milliseconds.
	ParseTimeMS float64 `json:"parse_time_ms" yaml:"parse_time_ms"`

	// ExtractTimeMS is the extraction time in milliseconds.
	ExtractTimeMS float64 `json:"extract_time_ms" yaml:"extract_time_ms"`
}

// CategoryCounts holds the number of items found per PMI category.
type CategoryCounts struct {
	Dimensions          int `json:"dimensions" yaml:"dimensions"`
	GeometricTolerances int `json:"geometric_tolerances" yaml:"geometric_tolerances"`
	Datums              int `json:"datums" yaml:"datums"`
	SurfaceFinishes     int `json:"surface_finishes" yaml:"surface_finishes"`
	WeldSymbols         int `json:"weld_symbols" yaml:"weld_symbols"`
	Notes               int `json:"notes" yaml:"notes"`
	GraphicalElements   int `json:"graphical_pmi" yaml:"graphical_pmi"`
	AnnotationPlanes    int `json:"annotation_planes" yaml:"annotation_planes"`
}

// newResult returns a Result with every category initialized, so callers
// and encoders see empty lists rather than nulls.
func newResult() *Result {
	return &Result{
		Dimensions:          []Dimension{},
		GeometricTolerances: []GeometricTolerance{},
		Datums:              []Datum{},
		SurfaceFinishes:     []SurfaceFinish{},
		WeldSymbols:         []WeldSymbol{},
		Notes:               []Note{},
		GraphicalElements:   []GraphicalElement{},
		AnnotationPlanes:    []AnnotationPlane{},
	}
}

// pmiEntityTypes are the entity types counted as PMI for statistics.
var pmiEntityTypes = []string{
	"DIMENSIONAL_LOCATION",
	"DIMENSIONAL_SIZE",
	"ANGULAR_LOCATION",
	"GEOMETRIC_TOLERANCE",
	"POSITION_TOLERANCE",
	"FLATNESS_TOLERANCE",
	"PERPENDICULARITY_TOLERANCE",
	"SURFACE_PROFILE_TOLERANCE",
	"DATUM",
	"DATUM_FEATURE",
	"DATUM_SYSTEM",
	"PLUS_MINUS_TOLERANCE",
	"TOLERANCE_VALUE",
}
