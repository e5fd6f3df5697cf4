package resolver

import (
	"errors"
	"math"
	"testing"

	"github.com/wmarlow/caliper/document"
)

func parseFixture(t *testing.T, stmts string) *document.Document {
	t.Helper()
	src := "ISO-10303-21;\nDATA;\n" + stmts + "ENDSEC;\nEND-ISO-10303-21;\n"
	doc, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

// TestFollow tests shallow reference resolution.
func TestFollow(t *testing.T) {
	doc := parseFixture(t, "#1=PRODUCT('bracket','bracket','',(#2));\n")
	res := New(doc)

	e, err := res.Follow("#1")
	if err != nil {
		t.Fatalf("Follow(#1) error = %v", err)
	}
	if e.Type() != "PRODUCT" {
		t.Errorf("Follow(#1).Type() = %q, want %q", e.Type(), "PRODUCT")
	}

	if _, err := res.Follow("#99"); err == nil {
		t.Error("Follow(#99) expected error for missing entity, got nil")
	}
}

// TestFollowDeep_Cycle tests that a two-entity reference cycle is
// detected rather than recursed into.
func TestFollowDeep_Cycle(t *testing.T) {
	doc := parseFixture(t, "#1=A(#2);\n#2=A(#1);\n")
	res := New(doc)

	_, err := res.FollowDeep("#1")
	if err == nil {
		t.Fatal("FollowDeep(#1) expected cycle error, got nil")
	}
	var cerr *CycleError
	if !errors.As(err, &cerr) {
		t.Fatalf("FollowDeep(#1) error = %v, want *CycleError", err)
	}
	if cerr.Limit != 0 {
		t.Errorf("CycleError.Limit = %d, want 0 for a true cycle", cerr.Limit)
	}
}

// TestFollowDeep_SelfReference tests an entity referring to itself.
func TestFollowDeep_SelfReference(t *testing.T) {
	doc := parseFixture(t, "#1=A(#1);\n")
	res := New(doc)

	var cerr *CycleError
	if _, err := res.FollowDeep("#1"); !errors.As(err, &cerr) {
		t.Fatalf("FollowDeep(#1) error = %v, want *CycleError", err)
	}
}

// TestFollowDeep_SharedSubstructure tests that a diamond-shaped graph
// resolves without a false cycle report.
func TestFollowDeep_SharedSubstructure(t *testing.T) {
	doc := parseFixture(t,
		"#1=ASSEMBLY((#2,#3));\n"+
			"#2=PART(#4);\n"+
			"#3=PART(#4);\n"+
			"#4=CARTESIAN_POINT('',(0.,0.,0.));\n")
	res := New(doc)

	if _, err := res.FollowDeep("#1"); err != nil {
		t.Errorf("FollowDeep(#1) error = %v, want nil", err)
	}
}

// TestFollowDeep_MaxDepth tests configurable depth bounding.
func TestFollowDeep_MaxDepth(t *testing.T) {
	doc := parseFixture(t,
		"#1=A(#2);\n#2=A(#3);\n#3=A(#4);\n#4=A(#5);\n#5=A('end');\n")
	res := New(doc, WithMaxDepth(3))

	_, err := res.FollowDeep("#1")
	var cerr *CycleError
	if !errors.As(err, &cerr) {
		t.Fatalf("FollowDeep(#1) error = %v, want *CycleError", err)
	}
	if cerr.Limit != 3 {
		t.Errorf("CycleError.Limit = %d, want 3", cerr.Limit)
	}

	deep := New(doc)
	if _, err := deep.FollowDeep("#1"); err != nil {
		t.Errorf("FollowDeep(#1) with default depth error = %v, want nil", err)
	}
}

// TestFollowDeep_DanglingReference tests that missing entities are
// skipped during the walk rather than failing it.
func TestFollowDeep_DanglingReference(t *testing.T) {
	doc := parseFixture(t, "#1=A(#2,#3);\n#2=B(4.5);\n")
	res := New(doc)

	if _, err := res.FollowDeep("#1"); err != nil {
		t.Errorf("FollowDeep(#1) error = %v, want nil", err)
	}
}

// TestNumericValue tests the attribute-first numeric chase.
func TestNumericValue(t *testing.T) {
	tests := []struct {
		name  string
		stmts string
		id    string
		want  float64
		ok    bool
	}{
		{
			name:  "direct real attribute",
			stmts: "#1=TOLERANCE_VALUE(0.05,#2);\n",
			id:    "#1",
			want:  0.05,
			ok:    true,
		},
		{
			name:  "integer attribute",
			stmts: "#1=COUNT_MEASURE(3);\n",
			id:    "#1",
			want:  3,
			ok:    true,
		},
		{
			name:  "number behind a reference",
			stmts: "#1=DIMENSIONAL_CHARACTERISTIC(#2);\n#2=VALUE_RANGE(25.4);\n",
			id:    "#1",
			want:  25.4,
			ok:    true,
		},
		{
			name:  "number inside nested list",
			stmts: "#1=REPRESENTATION('',('label',(2.5)));\n",
			id:    "#1",
			want:  2.5,
			ok:    true,
		},
		{
			name:  "typed measure falls back to raw text",
			stmts: "#1=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(12.7),#2);\n",
			id:    "#1",
			want:  12.7,
			ok:    true,
		},
		{
			name:  "reference cycle yields no value",
			stmts: "#1=A(#2);\n#2=B(#1);\n",
			id:    "#1",
			ok:    false,
		},
		{
			name:  "nothing numeric at all",
			stmts: "#1=PRODUCT('p','p','',(#2));\n",
			id:    "#1",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseFixture(t, tt.stmts)
			res := New(doc)
			e, _ := doc.Get(tt.id)

			got, ok := res.NumericValue(e)
			if ok != tt.ok {
				t.Fatalf("NumericValue() ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NumericValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNumericValue_Nil tests the nil-entity guard.
func TestNumericValue_Nil(t *testing.T) {
	doc := parseFixture(t, "#1=A(1.0);\n")
	res := New(doc)

	if _, ok := res.NumericValue(nil); ok {
		t.Error("NumericValue(nil) ok = true, want false")
	}
}

// TestNumericFromText tests the measure-wrapper text patterns.
func TestNumericFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{
			name: "length measure",
			text: "#5=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(0.1),#9);",
			want: 0.1,
			ok:   true,
		},
		{
			name: "positive length measure",
			text: "POSITIVE_LENGTH_MEASURE(3.5)",
			want: 3.5,
			ok:   true,
		},
		{
			name: "plane angle measure",
			text: "PLANE_ANGLE_MEASURE(45.0)",
			want: 45.0,
			ok:   true,
		},
		{
			name: "measure with unit",
			text: "MEASURE_WITH_UNIT(COUNT_MEASURE(7.0),#2)",
			want: 7.0,
			ok:   true,
		},
		{
			name: "generic first number",
			text: "SOMETHING(12.7,#3)",
			want: 12.7,
			ok:   true,
		},
		{
			name: "wrapped measure beats leading reference",
			text: "THING(#1,LENGTH_MEASURE(2.0))",
			want: 2.0,
			ok:   true,
		},
		{
			name: "trailing decimal point",
			text: "LENGTH_MEASURE(25.)",
			want: 25.0,
			ok:   true,
		},
		{
			name: "negative value",
			text: "LENGTH_MEASURE(-0.2)",
			want: -0.2,
			ok:   true,
		},
		{
			name: "no number anywhere",
			text: "PRODUCT('p','p','',(#2))",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumericFromText(tt.text)
			if ok != tt.ok {
				t.Fatalf("NumericFromText(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NumericFromText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// TestPoint tests CARTESIAN_POINT resolution.
func TestPoint(t *testing.T) {
	doc := parseFixture(t,
		"#1=CARTESIAN_POINT('',(1.0,2.0,3.0));\n"+
			"#2=CARTESIAN_POINT('flat',(4.0,5.0));\n"+
			"#3=DIRECTION('',(0.,0.,1.));\n"+
			"#4=CARTESIAN_POINT('bad','not a list');\n")
	res := New(doc)

	tests := []struct {
		id   string
		want Point
		ok   bool
	}{
		{"#1", Point{X: 1, Y: 2, Z: 3}, true},
		{"#2", Point{X: 4, Y: 5, Z: 0}, true},
		{"#3", Point{}, false},
		{"#4", Point{}, false},
	}

	for _, tt := range tests {
		e, _ := doc.Get(tt.id)
		got, ok := res.Point(e)
		if ok != tt.ok {
			t.Errorf("Point(%s) ok = %v, want %v", tt.id, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("Point(%s) = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}

// TestDirection tests DIRECTION resolution.
func TestDirection(t *testing.T) {
	doc := parseFixture(t, "#1=DIRECTION('',(0.,0.,1.));\n")
	res := New(doc)

	e, _ := doc.Get("#1")
	got, ok := res.Direction(e)
	if !ok {
		t.Fatal("Direction(#1) ok = false, want true")
	}
	if (got != Direction{X: 0, Y: 0, Z: 1}) {
		t.Errorf("Direction(#1) = %+v, want {0 0 1}", got)
	}
}

// TestAxisPlacement tests AXIS2_PLACEMENT_3D resolution including
// partially specified placements.
func TestAxisPlacement(t *testing.T) {
	doc := parseFixture(t,
		"#1=AXIS2_PLACEMENT_3D('',#2,#3,#4);\n"+
			"#2=CARTESIAN_POINT('',(5.,5.,0.));\n"+
			"#3=DIRECTION('',(0.,0.,1.));\n"+
			"#4=DIRECTION('',(1.,0.,0.));\n"+
			"#5=AXIS2_PLACEMENT_3D('',#2,$,$);\n"+
			"#6=AXIS2_PLACEMENT_3D('',#99,$,$);\n")
	res := New(doc)

	e, _ := doc.Get("#1")
	p, ok := res.AxisPlacement(e)
	if !ok {
		t.Fatal("AxisPlacement(#1) ok = false, want true")
	}
	if p.Location == nil || *p.Location != (Point{X: 5, Y: 5, Z: 0}) {
		t.Errorf("AxisPlacement(#1).Location = %+v, want {5 5 0}", p.Location)
	}
	if p.Axis == nil || *p.Axis != (Direction{X: 0, Y: 0, Z: 1}) {
		t.Errorf("AxisPlacement(#1).Axis = %+v, want {0 0 1}", p.Axis)
	}
	if p.RefDirection == nil || *p.RefDirection != (Direction{X: 1, Y: 0, Z: 0}) {
		t.Errorf("AxisPlacement(#1).RefDirection = %+v, want {1 0 0}", p.RefDirection)
	}

	e, _ = doc.Get("#5")
	p, ok = res.AxisPlacement(e)
	if !ok {
		t.Fatal("AxisPlacement(#5) ok = false, want true")
	}
	if p.Location == nil {
		t.Error("AxisPlacement(#5).Location = nil, want point")
	}
	if p.Axis != nil || p.RefDirection != nil {
		t.Errorf("AxisPlacement(#5) axis fields = %+v/%+v, want nil/nil", p.Axis, p.RefDirection)
	}

	e, _ = doc.Get("#6")
	p, ok = res.AxisPlacement(e)
	if !ok {
		t.Fatal("AxisPlacement(#6) ok = false, want true")
	}
	if p.Location != nil {
		t.Errorf("AxisPlacement(#6).Location = %+v, want nil for dangling point", p.Location)
	}

	e, _ = doc.Get("#2")
	if _, ok := res.AxisPlacement(e); ok {
		t.Error("AxisPlacement(#2) ok = true for a CARTESIAN_POINT, want false")
	}
}

// TestAxisPlacementAt tests reference-based placement lookup.
func TestAxisPlacementAt(t *testing.T) {
	doc := parseFixture(t,
		"#1=AXIS2_PLACEMENT_3D('',#2,$,$);\n"+
			"#2=CARTESIAN_POINT('',(1.,2.,3.));\n")
	res := New(doc)

	p, ok := res.AxisPlacementAt("#1")
	if !ok {
		t.Fatal("AxisPlacementAt(#1) ok = false, want true")
	}
	if p.Location == nil || *p.Location != (Point{X: 1, Y: 2, Z: 3}) {
		t.Errorf("AxisPlacementAt(#1).Location = %+v, want {1 2 3}", p.Location)
	}

	if _, ok := res.AxisPlacementAt("#42"); ok {
		t.Error("AxisPlacementAt(#42) ok = true for missing entity, want false")
	}
}

// TestCycleError tests both message forms.
func TestCycleError(t *testing.T) {
	cycle := &CycleError{ID: "#7"}
	if got := cycle.Error(); got != "circular reference detected at #7" {
		t.Errorf("CycleError.Error() = %q", got)
	}

	depth := &CycleError{ID: "#7", Limit: 50}
	if got := depth.Error(); got != "maximum reference depth (50) exceeded at #7" {
		t.Errorf("CycleError.Error() = %q", got)
	}
}
