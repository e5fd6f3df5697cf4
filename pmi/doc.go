// Package pmi reconstructs Product Manufacturing Information from
// parsed STEP documents.
//
// Extraction is a single pass over a document.Document producing a
// Result with one slice per category: dimensions, geometric tolerances,
// datums, surface finishes, weld symbols, notes, graphical annotations,
// and annotation planes, plus an entity census.
//
// # Semantic and graphical PMI
//
// AP242 files carry machine-readable tolerance entities, which the
// extractor resolves into typed records with values, datum references,
// and associated geometry. Older AP203/AP214 exports flatten the same
// information into draughting occurrences; for those the extractor
// additionally classifies the graphical annotations by name and text
// markers. The format each document was classified as is recorded on
// Result.Format.
//
// # Failure policy
//
// Extract does not return an error. Annotations that cannot be resolved
// are skipped, recoverable conditions are appended to Result.Warnings,
// and a document without PMI produces empty categories rather than nil
// slices.
//
//	doc, err := document.ParseFile("bracket.step")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := pmi.Extract(doc)
//	for _, t := range result.GeometricTolerances {
//		fmt.Println(t.Text)
//	}
package pmi
