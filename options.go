package caliper

// ExtractOptions holds configuration for PMI extraction.
type ExtractOptions struct {
	// Reference chain bound passed to the resolver. Zero means the
	// resolver default.
	maxDepth int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		maxDepth: 0,
	}
}
