package pmi

import (
	"github.com/wmarlow/caliper/core"
	"github.com/wmarlow/caliper/resolver"
)

// itemAssociation pairs a draughting association entity with the set of
// ids it references, precomputed for containment checks.
type itemAssociation struct {
	ent  *core.Entity
	refs map[string]bool
}

// annotationLinks caches the DRAUGHTING_MODEL_ITEM_ASSOCIATION entities
// together with every id each one references.
func (e *extractor) annotationLinks() []itemAssociation {
	if e.links != nil {
		return e.links
	}
	e.links = []itemAssociation{}
	for _, ent := range e.doc.FindByType("DRAUGHTING_MODEL_ITEM_ASSOCIATION") {
		refs := make(map[string]bool)
		for _, r := range allRefs(ent.Attrs) {
			refs[string(r)] = true
		}
		e.links = append(e.links, itemAssociation{ent: ent, refs: refs})
	}
	return e.links
}

// itemPosition returns the 3D position presentation data links to the
// item, or the origin when nothing does.
func (e *extractor) itemPosition(id string) resolver.Point {
	if p, ok := e.position(id); ok {
		e.positioned++
		return p
	}
	return resolver.Point{}
}

// position walks the presentation associations for an item. A direct
// match means an association references the item id itself; failing
// that, an association sharing any reference with the item's own
// attributes counts, since both commonly point at the same shape aspect.
func (e *extractor) position(id string) (resolver.Point, bool) {
	links := e.annotationLinks()
	for _, link := range links {
		if !link.refs[id] {
			continue
		}
		if p, ok := e.presentationPosition(link.ent); ok {
			return p, true
		}
	}
	ent, ok := e.doc.Get(id)
	if !ok {
		return resolver.Point{}, false
	}
	for _, r := range allRefs(ent.Attrs) {
		for _, link := range links {
			if !link.refs[string(r)] {
				continue
			}
			if p, ok := e.presentationPosition(link.ent); ok {
				return p, true
			}
		}
	}
	return resolver.Point{}, false
}

// presentationPosition extracts a placement location from an
// association's identified presentation item, falling back to the
// association itself when the item attribute does not resolve.
func (e *extractor) presentationPosition(assoc *core.Entity) (resolver.Point, bool) {
	anchor := assoc
	if ref, ok := assoc.GetRef(4); ok {
		if target, found := e.doc.Get(string(ref)); found {
			anchor = target
		}
	}
	if pl, ok := e.placementNear(anchor); ok && pl.Location != nil {
		return *pl.Location, true
	}
	return resolver.Point{}, false
}

// placementNear finds an axis placement referenced by the entity,
// checking its direct references first and then the references of each
// directly referenced entity.
func (e *extractor) placementNear(ent *core.Entity) (*resolver.AxisPlacement, bool) {
	refs := allRefs(ent.Attrs)
	for _, r := range refs {
		if pl, ok := e.res.AxisPlacementAt(r); ok {
			return pl, true
		}
	}
	for _, r := range refs {
		target, ok := e.doc.Get(string(r))
		if !ok {
			continue
		}
		for _, rr := range allRefs(target.Attrs) {
			if pl, ok := e.res.AxisPlacementAt(rr); ok {
				return pl, true
			}
		}
	}
	return nil, false
}

// fallbackPositions spreads model geometry across the extracted items
// when no presentation association positioned anything. Files written
// without draughting associations still carry usable coordinates in
// their cartesian points and placements. Items already holding a leader
// anchor keep it.
func (e *extractor) fallbackPositions() {
	slots := e.positionSlots()
	if len(slots) == 0 {
		return
	}
	points := e.fallbackPoints()
	if len(points) == 0 {
		return
	}
	next := 0
	for _, slot := range slots {
		if next >= len(points) {
			break
		}
		if *slot != (resolver.Point{}) {
			continue
		}
		*slot = points[next]
		next++
	}
	if next > 0 {
		e.warn(core.WarnPositionFallback, "no annotation placements found; positions assigned from model geometry")
	}
}

// fallbackPoints gathers candidate positions: 3D cartesian points in
// document order, or axis placement locations when the file has no
// usable points. The origin is skipped in both passes.
func (e *extractor) fallbackPoints() []resolver.Point {
	var points []resolver.Point
	for _, ent := range e.doc.FindByType("CARTESIAN_POINT") {
		coords, ok := ent.GetList(1)
		if !ok || coords.Len() < 3 {
			continue
		}
		p, ok := e.res.Point(ent)
		if !ok || p == (resolver.Point{}) {
			continue
		}
		points = append(points, p)
	}
	if len(points) > 0 {
		return points
	}
	for _, ent := range e.doc.FindByType("AXIS2_PLACEMENT_3D") {
		pl, ok := e.res.AxisPlacement(ent)
		if !ok || pl.Location == nil || *pl.Location == (resolver.Point{}) {
			continue
		}
		points = append(points, *pl.Location)
	}
	return points
}

// positionSlots returns pointers to every item position in the result,
// in extraction order. Called only after all result slices are final.
func (e *extractor) positionSlots() []*resolver.Point {
	var slots []*resolver.Point
	r := e.result
	for i := range r.Dimensions {
		slots = append(slots, &r.Dimensions[i].Position)
	}
	for i := range r.GeometricTolerances {
		slots = append(slots, &r.GeometricTolerances[i].Position)
	}
	for i := range r.Datums {
		slots = append(slots, &r.Datums[i].Position)
	}
	for i := range r.SurfaceFinishes {
		slots = append(slots, &r.SurfaceFinishes[i].Position)
	}
	for i := range r.WeldSymbols {
		slots = append(slots, &r.WeldSymbols[i].Position)
	}
	for i := range r.Notes {
		slots = append(slots, &r.Notes[i].Position)
	}
	for i := range r.GraphicalElements {
		slots = append(slots, &r.GraphicalElements[i].Position)
	}
	return slots
}
