package pmi

import "testing"

// TestExtractWelds_Semantic tests a weld symbol entity with its size in
// the callout text.
func TestExtractWelds_Semantic(t *testing.T) {
	r := extractFixture(t, "#10=WELD_SYMBOL('fillet weld 6','',#7,.T.);\n")

	if len(r.WeldSymbols) != 1 {
		t.Fatalf("len(WeldSymbols) = %d, want 1", len(r.WeldSymbols))
	}
	w := r.WeldSymbols[0]
	if w.Type != "fillet" {
		t.Errorf("Type = %q, want %q", w.Type, "fillet")
	}
	if w.Symbol != "△" {
		t.Errorf("Symbol = %q, want %q", w.Symbol, "△")
	}
	if w.Size == nil || *w.Size != 6 {
		t.Errorf("Size = %v, want 6", w.Size)
	}
	if w.Text != "fillet weld 6" {
		t.Errorf("Text = %q, want %q", w.Text, "fillet weld 6")
	}
}

// TestExtractWelds_Process tests that a welding process entity records
// its process name without inventing a joint class.
func TestExtractWelds_Process(t *testing.T) {
	r := extractFixture(t, "#10=WELDING_PROCESS('GTAW','',#7,.T.);\n")

	if len(r.WeldSymbols) != 1 {
		t.Fatalf("len(WeldSymbols) = %d, want 1", len(r.WeldSymbols))
	}
	w := r.WeldSymbols[0]
	if w.Type != "weld" {
		t.Errorf("Type = %q, want %q", w.Type, "weld")
	}
	if w.Process != "GTAW" {
		t.Errorf("Process = %q, want %q", w.Process, "GTAW")
	}
	if w.Size != nil {
		t.Errorf("Size = %v, want nil", w.Size)
	}
}

// TestExtractWelds_TextFallback tests weld callouts recovered from
// annotation text; the consumed text must not reappear as a note.
func TestExtractWelds_TextFallback(t *testing.T) {
	r := extractFixture(t, "#10=TEXT_LITERAL('FILLET WELD 5','','','','');\n")

	if len(r.WeldSymbols) != 1 {
		t.Fatalf("len(WeldSymbols) = %d, want 1", len(r.WeldSymbols))
	}
	w := r.WeldSymbols[0]
	if w.Type != "fillet" {
		t.Errorf("Type = %q, want %q", w.Type, "fillet")
	}
	if w.Size == nil || *w.Size != 5 {
		t.Errorf("Size = %v, want 5", w.Size)
	}
	if len(r.Notes) != 0 {
		t.Errorf("Notes = %v, want none after the text was claimed", r.Notes)
	}
}

// TestClassifyWeld tests the joint classification table.
func TestClassifyWeld(t *testing.T) {
	tests := []struct {
		text       string
		wantName   string
		wantSymbol string
	}{
		{"FILLET WELD", "fillet", "△"},
		{"vee groove both sides", "v_groove", "V"},
		{"spot weld pitch 20", "spot", "○"},
		{"seam weld", "seam", "⊖"},
		{"weld per drawing", "weld", ""},
	}
	for _, tt := range tests {
		name, symbol := classifyWeld(tt.text)
		if name != tt.wantName || symbol != tt.wantSymbol {
			t.Errorf("classifyWeld(%q) = %q %q, want %q %q", tt.text, name, symbol, tt.wantName, tt.wantSymbol)
		}
	}
}
