package document

import (
	"sort"
	"strings"
	"time"

	"github.com/wmarlow/caliper/core"
)

// Document is a parsed STEP exchange structure: every entity of the DATA
// section, indexed by id and by type, plus header metadata and the resolved
// length unit. A Document is read-only after parsing, so lookups need no
// synchronization.
type Document struct {
	entities  map[string]*core.Entity
	order     []string // first-occurrence order of entity ids
	typeIndex map[string][]*core.Entity
	header    *Header
	unit      string
	path      string
	warnings  []core.Warning
	parseTime time.Duration
}

// TypeCount pairs an entity type name with the number of entities carrying
// it.
type TypeCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Get returns the entity with the given id. The id may be written with or
// without the leading '#'.
func (d *Document) Get(id string) (*core.Entity, bool) {
	key, ok := core.NormalizeID(id)
	if !ok {
		return nil, false
	}
	e, ok := d.entities[key]
	return e, ok
}

// Entities returns every entity in file order.
func (d *Document) Entities() []*core.Entity {
	out := make([]*core.Entity, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.entities[id])
	}
	return out
}

// FindByType returns the entities carrying the named type, in file order.
// The match ignores case, and complex instances are found under every type
// they carry. The returned slice is shared; callers must not modify it.
func (d *Document) FindByType(name string) []*core.Entity {
	return d.typeIndex[strings.ToUpper(name)]
}

// FindByAnyType returns the union of FindByType over every name, with
// duplicates removed and first-encounter order preserved.
func (d *Document) FindByAnyType(names ...string) []*core.Entity {
	var out []*core.Entity
	seen := make(map[string]bool)
	for _, name := range names {
		for _, e := range d.FindByType(name) {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	return out
}

// HasAnyType reports whether at least one entity carries one of the named
// types.
func (d *Document) HasAnyType(names ...string) bool {
	for _, name := range names {
		if len(d.FindByType(name)) > 0 {
			return true
		}
	}
	return false
}

// EntityCount returns the number of entities in the DATA section.
func (d *Document) EntityCount() int {
	return len(d.order)
}

// TypeCount returns the number of distinct entity type names.
func (d *Document) TypeCount() int {
	return len(d.typeIndex)
}

// TypeCounts returns the per-type entity counts as a fresh map.
func (d *Document) TypeCounts() map[string]int {
	out := make(map[string]int, len(d.typeIndex))
	for name, entities := range d.typeIndex {
		out[name] = len(entities)
	}
	return out
}

// TopTypes returns up to n types ordered by descending entity count, ties
// broken alphabetically so the census is deterministic.
func (d *Document) TopTypes(n int) []TypeCount {
	counts := make([]TypeCount, 0, len(d.typeIndex))
	for name, entities := range d.typeIndex {
		counts = append(counts, TypeCount{Name: name, Count: len(entities)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Header returns the parsed HEADER metadata. It is never nil; a file
// without a HEADER section yields an empty Header.
func (d *Document) Header() *Header {
	return d.header
}

// LengthUnit returns the document's primary length unit, such as "mm" or
// "in".
func (d *Document) LengthUnit() string {
	return d.unit
}

// Path returns the source file path when the document came from ParseFile,
// or an empty string.
func (d *Document) Path() string {
	return d.path
}

// ParseTime returns how long parsing the DATA section took.
func (d *Document) ParseTime() time.Duration {
	return d.parseTime
}

// Warnings returns the non-fatal conditions encountered during parsing.
func (d *Document) Warnings() []core.Warning {
	return d.warnings
}

// index registers one parsed entity. A duplicate id keeps the original file
// position but the later definition wins, mirroring how a map-based reader
// would behave.
func (d *Document) index(e *core.Entity) {
	if _, dup := d.entities[e.ID]; !dup {
		d.order = append(d.order, e.ID)
	}
	d.entities[e.ID] = e
}

// buildTypeIndex fills the type index from the entity map. Called once at
// the end of parsing so duplicate-id replacements cannot leave stale rows.
func (d *Document) buildTypeIndex() {
	d.typeIndex = make(map[string][]*core.Entity)
	for _, id := range d.order {
		e := d.entities[id]
		for _, t := range e.Types {
			d.typeIndex[t] = append(d.typeIndex[t], e)
		}
	}
}
