// Package domain defines the core business entities for codelens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CodeFunction: A function or component discovered in source text
//   - DependencyGraph: File and function nodes joined by "calls" edges
//   - FeatureMapping: Files grouped into product areas by directory
//   - Explanation: An LLM-generated description of a function
//   - Settings: Runtime configuration assembled from file and environment
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
