package pmi

import (
	"github.com/wmarlow/caliper/core"
	"github.com/wmarlow/caliper/resolver"
)

// allRefs returns every entity reference in the list, descending into
// nested aggregates, in positional order.
func allRefs(l core.List) []core.Ref {
	var refs []core.Ref
	for _, v := range l {
		switch t := v.(type) {
		case core.Ref:
			refs = append(refs, t)
		case core.List:
			refs = append(refs, allRefs(t)...)
		}
	}
	return refs
}

// associatedGeometry collects the geometry ids a shape aspect resolves
// to: GEOMETRIC_ITEM_SPECIFIC_USAGE entities naming the aspect directly,
// plus the same lookup repeated through SHAPE_ASPECT_RELATIONSHIP parents.
// Results keep first-encounter order with duplicates removed.
func (e *extractor) associatedGeometry(ids ...string) []string {
	out := []string{}
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	for _, id := range ids {
		if id == "" || visited[id] {
			continue
		}
		visited[id] = true
		e.collectGeometry(id, visited, seen, &out)
	}
	return out
}

func (e *extractor) collectGeometry(id string, visited, seen map[string]bool, out *[]string) {
	for _, gisu := range e.doc.FindByType("GEOMETRIC_ITEM_SPECIFIC_USAGE") {
		ref, ok := gisu.GetRef(2)
		if !ok || string(ref) != id {
			continue
		}
		addGeometryRefs(gisu.Attr(4), seen, out)
	}
	for _, sar := range e.doc.FindByType("SHAPE_ASPECT_RELATIONSHIP") {
		related, ok := sar.GetRef(2)
		if !ok || string(related) != id {
			continue
		}
		relating, ok := sar.GetRef(3)
		if !ok || visited[string(relating)] {
			continue
		}
		visited[string(relating)] = true
		e.collectGeometry(string(relating), visited, seen, out)
	}
}

// toleranceGeometry collects geometry ids for a toleranced shape aspect.
// Tolerances attach through usage entities only, without relationship
// traversal.
func (e *extractor) toleranceGeometry(id string) []string {
	out := []string{}
	if id == "" {
		return out
	}
	seen := make(map[string]bool)
	for _, gisu := range e.doc.FindByType("GEOMETRIC_ITEM_SPECIFIC_USAGE") {
		ref, ok := gisu.GetRef(2)
		if !ok || string(ref) != id {
			continue
		}
		addGeometryRefs(gisu.Attr(4), seen, &out)
	}
	return out
}

// datumGeometry collects geometry ids for a datum or datum feature,
// consulting usage entities and ITEM_IDENTIFIED_REPRESENTATION_USAGE
// representation links.
func (e *extractor) datumGeometry(id string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, gisu := range e.doc.FindByType("GEOMETRIC_ITEM_SPECIFIC_USAGE") {
		ref, ok := gisu.GetRef(2)
		if !ok || string(ref) != id {
			continue
		}
		addGeometryRefs(gisu.Attr(4), seen, &out)
	}
	for _, iiru := range e.doc.FindByType("ITEM_IDENTIFIED_REPRESENTATION_USAGE") {
		ref, ok := iiru.GetRef(2)
		if !ok || string(ref) != id {
			continue
		}
		addGeometryRefs(iiru.Attr(4), seen, &out)
	}
	return out
}

// leaderAnchor derives a leader-line attachment point from the first
// classifiable element of the associated geometry. Cylinders and circles
// anchor at the axis origin, edges at the midpoint of their end
// vertices, planar faces at the plane origin, and anything else at the
// first vertex reachable through its bounds.
func (e *extractor) leaderAnchor(geometry []string) (resolver.Point, bool) {
	for _, id := range geometry {
		ent, ok := e.doc.Get(id)
		if !ok {
			continue
		}
		if p, ok := e.anchorPoint(ent); ok {
			return p, true
		}
	}
	return resolver.Point{}, false
}

func (e *extractor) anchorPoint(ent *core.Entity) (resolver.Point, bool) {
	switch {
	case ent.HasType("CYLINDRICAL_SURFACE"), ent.HasType("CIRCLE"), ent.HasType("PLANE"):
		return e.placementOrigin(ent, 1)
	case ent.HasType("EDGE_CURVE"):
		start, okS := e.vertexAt(ent, 1)
		end, okE := e.vertexAt(ent, 2)
		switch {
		case okS && okE:
			return resolver.Point{
				X: (start.X + end.X) / 2,
				Y: (start.Y + end.Y) / 2,
				Z: (start.Z + end.Z) / 2,
			}, true
		case okS:
			return start, true
		case okE:
			return end, true
		}
		return resolver.Point{}, false
	case ent.HasType("ADVANCED_FACE"), ent.HasType("FACE_SURFACE"):
		if ref, ok := ent.GetRef(2); ok {
			if surface, found := e.doc.Get(string(ref)); found {
				if p, ok := e.surfaceAnchor(surface); ok {
					return p, true
				}
			}
		}
		return e.firstVertex(ent)
	}
	return e.firstVertex(ent)
}

// surfaceAnchor reads the placement origin of an elementary surface.
func (e *extractor) surfaceAnchor(surface *core.Entity) (resolver.Point, bool) {
	switch {
	case surface.HasType("PLANE"), surface.HasType("CYLINDRICAL_SURFACE"),
		surface.HasType("CONICAL_SURFACE"), surface.HasType("SPHERICAL_SURFACE"),
		surface.HasType("TOROIDAL_SURFACE"):
		return e.placementOrigin(surface, 1)
	}
	return resolver.Point{}, false
}

// placementOrigin resolves the axis placement referenced at the
// attribute index to its location.
func (e *extractor) placementOrigin(ent *core.Entity, idx int) (resolver.Point, bool) {
	ref, ok := ent.GetRef(idx)
	if !ok {
		return resolver.Point{}, false
	}
	pl, ok := e.res.AxisPlacementAt(ref)
	if !ok || pl.Location == nil {
		return resolver.Point{}, false
	}
	return *pl.Location, true
}

// vertexAt resolves the VERTEX_POINT reference at the attribute index
// to its coordinates.
func (e *extractor) vertexAt(ent *core.Entity, idx int) (resolver.Point, bool) {
	ref, ok := ent.GetRef(idx)
	if !ok {
		return resolver.Point{}, false
	}
	v, ok := e.doc.Get(string(ref))
	if !ok || !v.HasType("VERTEX_POINT") {
		return resolver.Point{}, false
	}
	pref, ok := v.GetRef(1)
	if !ok {
		return resolver.Point{}, false
	}
	return e.res.PointAt(pref)
}

// firstVertex walks the entity's references depth first and returns the
// coordinates of the first resolvable VERTEX_POINT.
func (e *extractor) firstVertex(ent *core.Entity) (resolver.Point, bool) {
	return e.searchVertex(ent, make(map[string]bool))
}

func (e *extractor) searchVertex(ent *core.Entity, visited map[string]bool) (resolver.Point, bool) {
	if visited[ent.ID] {
		return resolver.Point{}, false
	}
	visited[ent.ID] = true
	if ent.HasType("VERTEX_POINT") {
		if ref, ok := ent.GetRef(1); ok {
			return e.res.PointAt(ref)
		}
		return resolver.Point{}, false
	}
	for _, ref := range allRefs(ent.Attrs) {
		next, ok := e.doc.Get(string(ref))
		if !ok {
			continue
		}
		if p, ok := e.searchVertex(next, visited); ok {
			return p, true
		}
	}
	return resolver.Point{}, false
}

// addGeometryRefs appends the reference, or every reference in the list,
// skipping ids already seen.
func addGeometryRefs(v core.Value, seen map[string]bool, out *[]string) {
	switch t := v.(type) {
	case core.Ref:
		if !seen[string(t)] {
			seen[string(t)] = true
			*out = append(*out, string(t))
		}
	case core.List:
		for _, r := range allRefs(t) {
			if !seen[string(r)] {
				seen[string(r)] = true
				*out = append(*out, string(r))
			}
		}
	}
}
