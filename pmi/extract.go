package pmi

import (
	"time"

	"github.com/wmarlow/caliper/core"
	"github.com/wmarlow/caliper/document"
	"github.com/wmarlow/caliper/format"
	"github.com/wmarlow/caliper/resolver"
)

// Option configures an extraction run.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth bounds reference-chain traversal while resolving values
// and placements. Zero keeps the resolver default.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// extractor holds the working state of a single extraction run.
type extractor struct {
	doc        *document.Document
	res        *resolver.Resolver
	unit       string
	result     *Result
	links      []itemAssociation
	positioned int
}

// Extract reads every PMI category out of a parsed document. It does not
// fail: malformed annotations are skipped, recoverable problems become
// warnings on the result, and a document without PMI yields a result
// whose categories are all empty.
func Extract(doc *document.Document, opts ...Option) *Result {
	result := newResult()
	if doc == nil {
		return result
	}
	start := time.Now()

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	var ropts []resolver.Option
	if cfg.maxDepth > 0 {
		ropts = append(ropts, resolver.WithMaxDepth(cfg.maxDepth))
	}

	e := &extractor{
		doc:    doc,
		res:    resolver.New(doc, ropts...),
		unit:   doc.LengthUnit(),
		result: result,
	}
	result.Warnings = append(result.Warnings, doc.Warnings()...)

	proto := format.Classify(doc)
	result.Format = proto.String()

	e.extractDimensions()
	e.extractTolerances()
	e.extractDatums()
	if proto == format.Legacy {
		e.extractGraphical()
	}

	texts := e.annotationTexts()
	claimed := make([]bool, len(texts))
	e.extractFinishes(texts, claimed)
	e.extractWelds(texts, claimed)
	e.extractNotes(texts, claimed)
	e.extractPlanes()

	if e.positioned == 0 {
		e.fallbackPositions()
	}

	result.Statistics = e.statistics(time.Since(start))
	return result
}

// warn records a non-fatal extraction problem on the result.
func (e *extractor) warn(code, message string) {
	e.result.Warnings = append(e.result.Warnings, core.Warning{Code: code, Message: message})
}

// extractPlanes reads ANNOTATION_PLANE entities, which group annotations
// on a shared plane and carry the placement used to render them.
func (e *extractor) extractPlanes() {
	for _, ent := range e.doc.FindByType("ANNOTATION_PLANE") {
		p := AnnotationPlane{ID: ent.ID}
		if name, ok := ent.GetString(0); ok {
			p.Name = name
		}
		if pl, ok := e.placementNear(ent); ok {
			p.Origin = pl.Location
			p.Normal = pl.Axis
			p.WritingDirection = pl.RefDirection
		}
		e.result.AnnotationPlanes = append(e.result.AnnotationPlanes, p)
	}
}

// statistics assembles the entity census and timing block.
func (e *extractor) statistics(extract time.Duration) Statistics {
	counts := e.doc.TypeCounts()
	pmiCount := 0
	for _, name := range pmiEntityTypes {
		pmiCount += counts[name]
	}
	r := e.result
	return Statistics{
		TotalEntities: e.doc.EntityCount(),
		UniqueTypes:   e.doc.TypeCount(),
		PMIEntities:   pmiCount,
		TopTypes:      e.doc.TopTypes(20),
		Counts: CategoryCounts{
			Dimensions:          len(r.Dimensions),
			GeometricTolerances: len(r.GeometricTolerances),
			Datums:              len(r.Datums),
			SurfaceFinishes:     len(r.SurfaceFinishes),
			WeldSymbols:         len(r.WeldSymbols),
			Notes:               len(r.Notes),
			GraphicalElements:   len(r.GraphicalElements),
			AnnotationPlanes:    len(r.AnnotationPlanes),
		},
		ParseTimeMS:   float64(e.doc.ParseTime().Microseconds()) / 1000.0,
		ExtractTimeMS: float64(extract.Microseconds()) / 1000.0,
	}
}
