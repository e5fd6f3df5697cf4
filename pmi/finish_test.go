package pmi

import "testing"

// TestExtractFinishes_SemanticTexture tests a texture representation
// whose roughness measure sits one reference deep.
func TestExtractFinishes_SemanticTexture(t *testing.T) {
	r := extractFixture(t,
		"#10=SURFACE_TEXTURE_REPRESENTATION('surface texture Rz',(#11),#98);\n"+
			"#11=(LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(12.5),#99)MEASURE_REPRESENTATION_ITEM()REPRESENTATION_ITEM('Rz'));\n")

	if len(r.SurfaceFinishes) != 1 {
		t.Fatalf("len(SurfaceFinishes) = %d, want 1", len(r.SurfaceFinishes))
	}
	f := r.SurfaceFinishes[0]
	if f.RoughnessType != "Rz" {
		t.Errorf("RoughnessType = %q, want %q", f.RoughnessType, "Rz")
	}
	if f.RoughnessValue == nil || *f.RoughnessValue != 12.5 {
		t.Errorf("RoughnessValue = %v, want 12.5", f.RoughnessValue)
	}
	if f.Unit != "μm" {
		t.Errorf("Unit = %q, want %q", f.Unit, "μm")
	}
	if f.Text != "surface texture Rz" {
		t.Errorf("Text = %q, want %q", f.Text, "surface texture Rz")
	}
}

// TestExtractFinishes_ParameterWithLay tests a texture parameter
// carrying its own value and a lay enumeration.
func TestExtractFinishes_ParameterWithLay(t *testing.T) {
	r := extractFixture(t, "#10=SURFACE_TEXTURE_PARAMETER('Ra',1.6,.CIRCULAR.);\n")

	if len(r.SurfaceFinishes) != 1 {
		t.Fatalf("len(SurfaceFinishes) = %d, want 1", len(r.SurfaceFinishes))
	}
	f := r.SurfaceFinishes[0]
	if f.RoughnessType != "Ra" {
		t.Errorf("RoughnessType = %q, want %q", f.RoughnessType, "Ra")
	}
	if f.RoughnessValue == nil || *f.RoughnessValue != 1.6 {
		t.Errorf("RoughnessValue = %v, want 1.6", f.RoughnessValue)
	}
	if f.Lay != "C" {
		t.Errorf("Lay = %q, want %q", f.Lay, "C")
	}
}

// TestExtractFinishes_MachiningAllowance tests the allowance entity.
func TestExtractFinishes_MachiningAllowance(t *testing.T) {
	r := extractFixture(t, "#20=MACHINING_ALLOWANCE('allowance','',2.5,#98);\n")

	if len(r.SurfaceFinishes) != 1 {
		t.Fatalf("len(SurfaceFinishes) = %d, want 1", len(r.SurfaceFinishes))
	}
	f := r.SurfaceFinishes[0]
	if f.Allowance == nil || *f.Allowance != 2.5 {
		t.Errorf("Allowance = %v, want 2.5", f.Allowance)
	}
	if f.RoughnessValue != nil {
		t.Errorf("RoughnessValue = %v, want nil", f.RoughnessValue)
	}
}

// TestExtractFinishes_TextFallback tests roughness scanned out of
// annotation text when no semantic entity exists; the consumed text must
// not reappear as a note.
func TestExtractFinishes_TextFallback(t *testing.T) {
	r := extractFixture(t, "#10=TEXT_LITERAL('Ra 3.2','','','','');\n")

	if len(r.SurfaceFinishes) != 1 {
		t.Fatalf("len(SurfaceFinishes) = %d, want 1", len(r.SurfaceFinishes))
	}
	f := r.SurfaceFinishes[0]
	if f.RoughnessType != "Ra" {
		t.Errorf("RoughnessType = %q, want %q", f.RoughnessType, "Ra")
	}
	if f.RoughnessValue == nil || *f.RoughnessValue != 3.2 {
		t.Errorf("RoughnessValue = %v, want 3.2", f.RoughnessValue)
	}
	if f.Text != "Ra 3.2" {
		t.Errorf("Text = %q, want %q", f.Text, "Ra 3.2")
	}
	if len(r.Notes) != 0 {
		t.Errorf("Notes = %v, want none after the text was claimed", r.Notes)
	}
}

// TestExtractFinishes_SemanticSuppressesTextScan tests that the presence
// of a semantic finish leaves annotation texts alone.
func TestExtractFinishes_SemanticSuppressesTextScan(t *testing.T) {
	r := extractFixture(t,
		"#10=SURFACE_TEXTURE_PARAMETER('Ra',1.6,.PARALLEL.);\n"+
			"#20=TEXT_LITERAL('Ra 6.3','','','','');\n")

	if len(r.SurfaceFinishes) != 1 {
		t.Fatalf("len(SurfaceFinishes) = %d, want 1", len(r.SurfaceFinishes))
	}
	if *r.SurfaceFinishes[0].RoughnessValue != 1.6 {
		t.Errorf("RoughnessValue = %v, want 1.6 from the semantic entity", *r.SurfaceFinishes[0].RoughnessValue)
	}
	if len(r.Notes) != 1 || r.Notes[0].Text != "Ra 6.3" {
		t.Errorf("Notes = %v, want the unclaimed text as a note", r.Notes)
	}
}

// TestRoughnessType tests parameter detection in statement text.
func TestRoughnessType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"#1=X('Ra 3.2');", "Ra"},
		{"#1=X('max Rz value');", "Rz"},
		{"#1=X('no parameter');", "Ra"},
	}
	for _, tt := range tests {
		if got := roughnessType(tt.raw); got != tt.want {
			t.Errorf("roughnessType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
