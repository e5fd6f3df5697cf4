package pmi

import (
	"reflect"
	"testing"
)

// TestExtractDimensions_DiameterWithTolerance tests the full resolution
// chain of a toleranced diameter: representation items for the nominal,
// a TOLERANCE_VALUE for the bounds, and usage entities for the geometry.
func TestExtractDimensions_DiameterWithTolerance(t *testing.T) {
	r := extractFixture(t,
		"#5=ADVANCED_FACE('',(),#6,.T.);\n"+
			"#10=SHAPE_ASPECT('hole','',#7,.T.);\n"+
			"#20=DIMENSIONAL_SIZE(#10,'diameter');\n"+
			"#30=(LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(25.),#99)MEASURE_REPRESENTATION_ITEM()REPRESENTATION_ITEM('nominal value'));\n"+
			"#40=SHAPE_DIMENSION_REPRESENTATION('',(#30),#98);\n"+
			"#50=DIMENSIONAL_CHARACTERISTIC_REPRESENTATION(#20,#40);\n"+
			"#61=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(0.1),#99);\n"+
			"#62=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(-0.1),#99);\n"+
			"#63=TOLERANCE_VALUE(#61,#62);\n"+
			"#70=PLUS_MINUS_TOLERANCE(#63,#20);\n"+
			"#85=GEOMETRIC_ITEM_SPECIFIC_USAGE('','',#10,#98,#5);\n"+
			"#99=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));\n")

	if len(r.Dimensions) != 1 {
		t.Fatalf("len(Dimensions) = %d, want 1", len(r.Dimensions))
	}
	d := r.Dimensions[0]
	if d.ID != "#20" {
		t.Errorf("ID = %q, want %q", d.ID, "#20")
	}
	if d.Type != "diameter" {
		t.Errorf("Type = %q, want %q", d.Type, "diameter")
	}
	if d.Value != 25.0 {
		t.Errorf("Value = %v, want 25.0", d.Value)
	}
	if d.Unit != "mm" {
		t.Errorf("Unit = %q, want %q", d.Unit, "mm")
	}
	if d.Tolerance == nil {
		t.Fatal("Tolerance = nil, want bounds")
	}
	if d.Tolerance.Type != "plus_minus" {
		t.Errorf("Tolerance.Type = %q, want %q", d.Tolerance.Type, "plus_minus")
	}
	if d.Tolerance.Upper == nil || *d.Tolerance.Upper != 0.1 {
		t.Errorf("Tolerance.Upper = %v, want 0.1", d.Tolerance.Upper)
	}
	if d.Tolerance.Lower == nil || *d.Tolerance.Lower != -0.1 {
		t.Errorf("Tolerance.Lower = %v, want -0.1", d.Tolerance.Lower)
	}
	if d.Text != "⌀25.00 ±0.10 mm" {
		t.Errorf("Text = %q, want %q", d.Text, "⌀25.00 ±0.10 mm")
	}
	if !reflect.DeepEqual(d.Geometry, []string{"#5"}) {
		t.Errorf("Geometry = %v, want [#5]", d.Geometry)
	}
}

// TestExtractDimensions_LimitsDimension tests a location dimension whose
// representation states explicit upper and lower limits.
func TestExtractDimensions_LimitsDimension(t *testing.T) {
	r := extractFixture(t,
		"#11=SHAPE_ASPECT('left','',#2,.T.);\n"+
			"#12=SHAPE_ASPECT('right','',#2,.T.);\n"+
			"#20=DIMENSIONAL_LOCATION('distance','',#11,#12);\n"+
			"#30=(LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(50.),#99)MEASURE_REPRESENTATION_ITEM()REPRESENTATION_ITEM('nominal value'));\n"+
			"#31=(LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(50.1),#99)MEASURE_REPRESENTATION_ITEM()REPRESENTATION_ITEM('upper limit'));\n"+
			"#32=(LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(49.9),#99)MEASURE_REPRESENTATION_ITEM()REPRESENTATION_ITEM('lower limit'));\n"+
			"#40=SHAPE_DIMENSION_REPRESENTATION('',(#30,#31,#32),#98);\n"+
			"#50=DIMENSIONAL_CHARACTERISTIC_REPRESENTATION(#20,#40);\n")

	if len(r.Dimensions) != 1 {
		t.Fatalf("len(Dimensions) = %d, want 1", len(r.Dimensions))
	}
	d := r.Dimensions[0]
	if d.Type != "linear" {
		t.Errorf("Type = %q, want %q", d.Type, "linear")
	}
	if d.Value != 50.0 {
		t.Errorf("Value = %v, want 50.0", d.Value)
	}
	if d.Tolerance == nil || d.Tolerance.Type != "limits" {
		t.Fatalf("Tolerance = %+v, want limits type", d.Tolerance)
	}
	if *d.Tolerance.Upper != 50.1 || *d.Tolerance.Lower != 49.9 {
		t.Errorf("bounds = %v/%v, want 50.1/49.9", *d.Tolerance.Upper, *d.Tolerance.Lower)
	}
	if d.Text != "50.00 +50.10/49.90 mm" {
		t.Errorf("Text = %q, want %q", d.Text, "50.00 +50.10/49.90 mm")
	}
}

// TestExtractDimensions_Angular tests that angular dimensions report
// degrees and the degree sign in display text.
func TestExtractDimensions_Angular(t *testing.T) {
	r := extractFixture(t,
		"#11=SHAPE_ASPECT('a','',#2,.T.);\n"+
			"#12=SHAPE_ASPECT('b','',#2,.T.);\n"+
			"#20=ANGULAR_LOCATION('angle','',#11,#12,.EQUAL.);\n"+
			"#30=(MEASURE_REPRESENTATION_ITEM()PLANE_ANGLE_MEASURE_WITH_UNIT(PLANE_ANGLE_MEASURE(45.),#97)REPRESENTATION_ITEM('nominal value'));\n"+
			"#40=SHAPE_DIMENSION_REPRESENTATION('',(#30),#98);\n"+
			"#50=DIMENSIONAL_CHARACTERISTIC_REPRESENTATION(#20,#40);\n")

	if len(r.Dimensions) != 1 {
		t.Fatalf("len(Dimensions) = %d, want 1", len(r.Dimensions))
	}
	d := r.Dimensions[0]
	if d.Type != "angular" {
		t.Errorf("Type = %q, want %q", d.Type, "angular")
	}
	if d.Value != 45.0 {
		t.Errorf("Value = %v, want 45.0", d.Value)
	}
	if d.Unit != "deg" {
		t.Errorf("Unit = %q, want %q", d.Unit, "deg")
	}
	if d.Text != "45.00 °" {
		t.Errorf("Text = %q, want %q", d.Text, "45.00 °")
	}
}

// TestExtractDimensions_FitClass tests an ISO 286 fit bound to a size
// through LIMITS_AND_FITS instead of numeric bounds.
func TestExtractDimensions_FitClass(t *testing.T) {
	r := extractFixture(t,
		"#10=SHAPE_ASPECT('bore','',#7,.T.);\n"+
			"#20=DIMENSIONAL_SIZE(#10,'cylindrical');\n"+
			"#61=LIMITS_AND_FITS('H','7','','');\n"+
			"#70=PLUS_MINUS_TOLERANCE(#61,#20);\n")

	if len(r.Dimensions) != 1 {
		t.Fatalf("len(Dimensions) = %d, want 1", len(r.Dimensions))
	}
	d := r.Dimensions[0]
	if d.Class != "H7" {
		t.Errorf("Class = %q, want %q", d.Class, "H7")
	}
	if d.Tolerance != nil {
		t.Errorf("Tolerance = %+v, want nil for a fit-classed dimension", d.Tolerance)
	}
}

// TestExtractDimensions_NoValue tests that a dimension without a
// characteristic representation still comes out with a zero value.
func TestExtractDimensions_NoValue(t *testing.T) {
	r := extractFixture(t,
		"#10=SHAPE_ASPECT('pin','',#7,.T.);\n"+
			"#20=DIMENSIONAL_SIZE(#10,'radius');\n")

	if len(r.Dimensions) != 1 {
		t.Fatalf("len(Dimensions) = %d, want 1", len(r.Dimensions))
	}
	d := r.Dimensions[0]
	if d.Type != "radius" {
		t.Errorf("Type = %q, want %q", d.Type, "radius")
	}
	if d.Value != 0 {
		t.Errorf("Value = %v, want 0", d.Value)
	}
	if d.Tolerance != nil {
		t.Errorf("Tolerance = %+v, want nil", d.Tolerance)
	}
	if d.Text != "" {
		t.Errorf("Text = %q, want empty", d.Text)
	}
}

// TestExtractDimensions_GeometryThroughRelationships tests geometry
// gathered through a SHAPE_ASPECT_RELATIONSHIP parent in addition to the
// aspect's own usage entity.
func TestExtractDimensions_GeometryThroughRelationships(t *testing.T) {
	r := extractFixture(t,
		"#10=SHAPE_ASPECT('hole','',#7,.T.);\n"+
			"#14=SHAPE_ASPECT('pattern','',#7,.T.);\n"+
			"#13=SHAPE_ASPECT_RELATIONSHIP('','',#10,#14);\n"+
			"#20=DIMENSIONAL_SIZE(#10,'thickness');\n"+
			"#85=GEOMETRIC_ITEM_SPECIFIC_USAGE('','',#10,#98,#5);\n"+
			"#86=GEOMETRIC_ITEM_SPECIFIC_USAGE('','',#14,#98,(#6,#8));\n")

	if len(r.Dimensions) != 1 {
		t.Fatalf("len(Dimensions) = %d, want 1", len(r.Dimensions))
	}
	want := []string{"#5", "#6", "#8"}
	if !reflect.DeepEqual(r.Dimensions[0].Geometry, want) {
		t.Errorf("Geometry = %v, want %v", r.Dimensions[0].Geometry, want)
	}
}

// TestFormatDimensionText tests callout rendering for each tolerance
// shape.
func TestFormatDimensionText(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name    string
		dimType string
		v       dimensionValue
		unit    string
		want    string
	}{
		{"no nominal", "linear", dimensionValue{}, "mm", ""},
		{"plain", "linear", dimensionValue{nominal: f(50)}, "mm", "50.00 mm"},
		{"diameter symmetric", "diameter", dimensionValue{nominal: f(25), upper: f(0.1), lower: f(-0.1)}, "mm", "⌀25.00 ±0.10 mm"},
		{"radius", "radius", dimensionValue{nominal: f(5)}, "mm", "R5.00 mm"},
		{"asymmetric", "linear", dimensionValue{nominal: f(10), upper: f(0.2), lower: f(-0.1)}, "mm", "10.00 +0.20/-0.10 mm"},
		{"upper only", "linear", dimensionValue{nominal: f(10), upper: f(0.2)}, "mm", "10.00 +0.20 mm"},
		{"lower only", "linear", dimensionValue{nominal: f(10), lower: f(-0.2)}, "mm", "10.00 -0.20 mm"},
		{"angular", "angular", dimensionValue{nominal: f(45)}, "°", "45.00 °"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDimensionText(tt.dimType, tt.v, tt.unit); got != tt.want {
				t.Errorf("formatDimensionText() = %q, want %q", got, tt.want)
			}
		})
	}
}
