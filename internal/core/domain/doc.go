// Package domain defines the core business entities for BrainSpread.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Content: A submitted title and body, the root of enrichment
//   - Summary: Generated summary text owned by a Content
//   - Label: A topical label owned by a Content
//   - EnrichedRecord: Read-time view of a Content with its summary and labels
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
