package resolver

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/wmarlow/caliper/core"
	"github.com/wmarlow/caliper/document"
)

// CycleError reports a reference chain that loops back on itself or
// runs past the configured depth limit.
type CycleError struct {
	ID    string // reference where the traversal stopped
	Limit int    // depth limit, zero for a true cycle
}

func (e *CycleError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("maximum reference depth (%d) exceeded at %s", e.Limit, e.ID)
	}
	return fmt.Sprintf("circular reference detected at %s", e.ID)
}

// Resolver follows entity references through a parsed document. It can
// chase reference chains to numeric values and resolve the geometric
// placement entities PMI annotations hang off of.
type Resolver struct {
	doc      *document.Document
	maxDepth int
}

// Option configures the resolver.
type Option func(*Resolver)

// WithMaxDepth sets the maximum reference-following depth (default: 50).
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// New creates a resolver over a parsed document.
func New(doc *document.Document, opts ...Option) *Resolver {
	r := &Resolver{
		doc:      doc,
		maxDepth: 50,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Follow resolves a single reference to its entity. This is a shallow
// resolution; nested references in the entity are left alone.
func (r *Resolver) Follow(ref core.Ref) (*core.Entity, error) {
	e, ok := r.doc.Get(string(ref))
	if !ok {
		return nil, fmt.Errorf("entity %s not found", ref)
	}
	return e, nil
}

// FollowDeep resolves a reference and then walks every reference
// reachable from it, so a malformed file (a cycle, or a chain deeper
// than the limit) surfaces as a CycleError instead of unbounded
// recursion in a caller. The resolved entity is returned once the
// subtree is known to terminate.
func (r *Resolver) FollowDeep(ref core.Ref) (*core.Entity, error) {
	e, ok := r.doc.Get(string(ref))
	if !ok {
		return nil, fmt.Errorf("entity %s not found", ref)
	}

	visited := map[string]bool{e.ID: true}
	if err := r.walkRefs(e, visited, 0); err != nil {
		return nil, err
	}
	return e, nil
}

// walkRefs follows every reference reachable from e. Dangling
// references are skipped; only cycles and depth overruns fail. A
// reference is unmarked once its branch completes, so shared
// substructure stays legal while back edges do not.
func (r *Resolver) walkRefs(e *core.Entity, visited map[string]bool, depth int) error {
	for _, ref := range refsIn(e.Attrs) {
		id := string(ref)
		if visited[id] {
			return &CycleError{ID: id}
		}
		next, ok := r.doc.Get(id)
		if !ok {
			continue
		}
		if depth+1 >= r.maxDepth {
			return &CycleError{ID: id, Limit: r.maxDepth}
		}

		visited[id] = true
		err := r.walkRefs(next, visited, depth+1)
		delete(visited, id)
		if err != nil {
			return err
		}
	}
	return nil
}

// refsIn collects every reference in an attribute list, including
// references inside nested aggregates.
func refsIn(l core.List) []core.Ref {
	var refs []core.Ref
	for _, v := range l {
		switch t := v.(type) {
		case core.Ref:
			refs = append(refs, t)
		case core.List:
			refs = append(refs, refsIn(t)...)
		}
	}
	return refs
}

// NumericValue chases an entity's attributes depth-first to the first
// numeric value, following reference chains through measure wrappers
// like MEASURE_WITH_UNIT. When the decoded attributes hold nothing
// numeric it falls back to scanning the raw statement text, since
// producers differ on how much structure they emit around a measure.
func (r *Resolver) NumericValue(e *core.Entity) (float64, bool) {
	if e == nil {
		return 0, false
	}
	if f, ok := r.numericValue(e, make(map[string]bool), 0); ok {
		return f, true
	}
	return NumericFromText(e.Raw)
}

func (r *Resolver) numericValue(e *core.Entity, visited map[string]bool, depth int) (float64, bool) {
	if depth >= r.maxDepth || visited[e.ID] {
		return 0, false
	}
	visited[e.ID] = true
	return r.numericInList(e.Attrs, visited, depth)
}

func (r *Resolver) numericInList(l core.List, visited map[string]bool, depth int) (float64, bool) {
	for _, v := range l {
		switch t := v.(type) {
		case core.Int:
			return float64(t), true
		case core.Real:
			return float64(t), true
		case core.Ref:
			if next, ok := r.doc.Get(string(t)); ok {
				if f, ok := r.numericValue(next, visited, depth+1); ok {
					return f, true
				}
			}
		case core.List:
			if f, ok := r.numericInList(t, visited, depth+1); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// measurePatterns are tried in order, most specific first. The generic
// first-number-in-parentheses form runs last so a leading reference
// argument cannot shadow a wrapped measure further along the statement.
var measurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:POSITIVE_)?LENGTH_MEASURE\s*\(\s*([-+]?\d+\.?\d*)\s*[,)]`),
	regexp.MustCompile(`PLANE_ANGLE_MEASURE\s*\(\s*([-+]?\d+\.?\d*)\s*[,)]`),
	regexp.MustCompile(`MEASURE_WITH_UNIT\s*\([^(]*\(\s*([-+]?\d+\.?\d*)\s*\)`),
	regexp.MustCompile(`\(\s*([-+]?\d+\.?\d*)\s*[,)]`),
}

// NumericFromText scans raw statement text for the first number inside
// a canonical measure wrapper. Typed parameters such as
// LENGTH_MEASURE(0.05) decode as raw tokens, so this is the usual path
// for measure entities.
func NumericFromText(s string) (float64, bool) {
	for _, re := range measurePatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Point is a position in model space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Direction is a direction vector. Components are direction ratios,
// not necessarily normalized.
type Direction struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// AxisPlacement is a resolved AXIS2_PLACEMENT_3D: a location plus an
// optional axis (local Z) and reference direction (local X).
type AxisPlacement struct {
	Location     *Point     `json:"location,omitempty" yaml:"location,omitempty"`
	Axis         *Direction `json:"axis,omitempty" yaml:"axis,omitempty"`
	RefDirection *Direction `json:"ref_direction,omitempty" yaml:"ref_direction,omitempty"`
}

// Point resolves a CARTESIAN_POINT entity to its coordinates. Planar
// files with two-component points get a zero Z.
func (r *Resolver) Point(e *core.Entity) (Point, bool) {
	if e == nil || !e.HasType("CARTESIAN_POINT") {
		return Point{}, false
	}
	coords, ok := coordinates(e)
	if !ok {
		return Point{}, false
	}
	return Point{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

// PointAt resolves a reference to a CARTESIAN_POINT.
func (r *Resolver) PointAt(ref core.Ref) (Point, bool) {
	e, ok := r.doc.Get(string(ref))
	if !ok {
		return Point{}, false
	}
	return r.Point(e)
}

// Direction resolves a DIRECTION entity to its direction ratios.
func (r *Resolver) Direction(e *core.Entity) (Direction, bool) {
	if e == nil || !e.HasType("DIRECTION") {
		return Direction{}, false
	}
	coords, ok := coordinates(e)
	if !ok {
		return Direction{}, false
	}
	return Direction{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

// DirectionAt resolves a reference to a DIRECTION.
func (r *Resolver) DirectionAt(ref core.Ref) (Direction, bool) {
	e, ok := r.doc.Get(string(ref))
	if !ok {
		return Direction{}, false
	}
	return r.Direction(e)
}

// AxisPlacement resolves an AXIS2_PLACEMENT_3D entity. Each of the
// three references is optional in the schema, so a missing or
// unresolvable piece leaves its field nil rather than failing the
// placement.
func (r *Resolver) AxisPlacement(e *core.Entity) (*AxisPlacement, bool) {
	if e == nil || !e.HasType("AXIS2_PLACEMENT_3D") {
		return nil, false
	}

	p := &AxisPlacement{}
	if ref, ok := e.GetRef(1); ok {
		if pt, ok := r.PointAt(ref); ok {
			p.Location = &pt
		}
	}
	if ref, ok := e.GetRef(2); ok {
		if d, ok := r.DirectionAt(ref); ok {
			p.Axis = &d
		}
	}
	if ref, ok := e.GetRef(3); ok {
		if d, ok := r.DirectionAt(ref); ok {
			p.RefDirection = &d
		}
	}
	return p, true
}

// AxisPlacementAt resolves a reference to an AXIS2_PLACEMENT_3D.
func (r *Resolver) AxisPlacementAt(ref core.Ref) (*AxisPlacement, bool) {
	e, ok := r.doc.Get(string(ref))
	if !ok {
		return nil, false
	}
	return r.AxisPlacement(e)
}

// coordinates reads the coordinate list attribute shared by
// CARTESIAN_POINT and DIRECTION. At least two components are required;
// a missing third defaults to zero.
func coordinates(e *core.Entity) ([3]float64, bool) {
	list, ok := e.GetList(1)
	if !ok {
		return [3]float64{}, false
	}

	var out [3]float64
	n := 0
	for _, v := range list {
		f, ok := core.AsFloat(v)
		if !ok {
			continue
		}
		if n < 3 {
			out[n] = f
			n++
		}
	}
	if n < 2 {
		return [3]float64{}, false
	}
	return out, true
}
