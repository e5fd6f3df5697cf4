package pmi

import (
	"reflect"
	"testing"
)

// TestExtractDatums_Label tests a DATUM with its identification
// attribute and geometry through both usage entity kinds.
func TestExtractDatums_Label(t *testing.T) {
	r := extractFixture(t,
		"#15=DATUM('','',#7,.F.,'A');\n"+
			"#85=GEOMETRIC_ITEM_SPECIFIC_USAGE('','',#15,#98,#5);\n"+
			"#90=ITEM_IDENTIFIED_REPRESENTATION_USAGE('','',#15,#98,(#6,#8));\n")

	if len(r.Datums) != 1 {
		t.Fatalf("len(Datums) = %d, want 1", len(r.Datums))
	}
	d := r.Datums[0]
	if d.Label != "A" {
		t.Errorf("Label = %q, want %q", d.Label, "A")
	}
	if d.ID != "#15" {
		t.Errorf("ID = %q, want %q", d.ID, "#15")
	}
	want := []string{"#5", "#6", "#8"}
	if !reflect.DeepEqual(d.Geometry, want) {
		t.Errorf("Geometry = %v, want %v", d.Geometry, want)
	}
}

// TestExtractDatums_ScanFallback tests the label scan for a DATUM
// missing the identification attribute position.
func TestExtractDatums_ScanFallback(t *testing.T) {
	r := extractFixture(t, "#15=DATUM('B','',#7,.F.);\n")

	if len(r.Datums) != 1 {
		t.Fatalf("len(Datums) = %d, want 1", len(r.Datums))
	}
	if r.Datums[0].Label != "B" {
		t.Errorf("Label = %q, want %q", r.Datums[0].Label, "B")
	}
}

// TestExtractDatums_FeatureSharesDatumLabel tests that a DATUM_FEATURE
// linked to an already-extracted DATUM does not produce a duplicate.
func TestExtractDatums_FeatureSharesDatumLabel(t *testing.T) {
	r := extractFixture(t,
		"#15=DATUM('','',#7,.F.,'A');\n"+
			"#18=DATUM_FEATURE('feature of a','',#7,.T.);\n"+
			"#19=SHAPE_ASPECT_RELATIONSHIP('','',#18,#15);\n")

	if len(r.Datums) != 1 {
		t.Fatalf("len(Datums) = %d, want 1", len(r.Datums))
	}
	if r.Datums[0].ID != "#15" {
		t.Errorf("ID = %q, want the datum entity #15", r.Datums[0].ID)
	}
}

// TestExtractDatums_FeatureNameFallback tests label recovery from
// feature names when no DATUM is linked: ordinals map to letters and
// letters pass through uppercased.
func TestExtractDatums_FeatureNameFallback(t *testing.T) {
	r := extractFixture(t,
		"#18=DATUM_FEATURE('Simple Datum.2','',#7,.T.);\n"+
			"#19=DATUM_FEATURE('datum c','',#7,.T.);\n")

	if len(r.Datums) != 2 {
		t.Fatalf("len(Datums) = %d, want 2", len(r.Datums))
	}
	if r.Datums[0].Label != "B" {
		t.Errorf("Datums[0].Label = %q, want %q", r.Datums[0].Label, "B")
	}
	if r.Datums[1].Label != "C" {
		t.Errorf("Datums[1].Label = %q, want %q", r.Datums[1].Label, "C")
	}
}

// TestExtractDatums_SkipsUnlabeled tests that a DATUM with no
// recoverable label is dropped.
func TestExtractDatums_SkipsUnlabeled(t *testing.T) {
	r := extractFixture(t, "#15=DATUM('','',#7,.F.,'');\n")

	if len(r.Datums) != 0 {
		t.Errorf("len(Datums) = %d, want 0", len(r.Datums))
	}
}

// TestOrdinalLabel tests the ordinal-to-letter mapping bounds.
func TestOrdinalLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "A"},
		{"2", "B"},
		{"26", "Z"},
		{"0", ""},
		{"27", ""},
	}
	for _, tt := range tests {
		if got := ordinalLabel(tt.in); got != tt.want {
			t.Errorf("ordinalLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
