// Package domain defines the core entities for corpuslint.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Corpus: A versioned, position-ordered sequence of Items
//   - Item: An aligned source/target pair and its ordered Units
//   - Unit: A reusable sub-piece of an Item's target text
//   - EvidenceSnapshot: Canonical mappings and adjacency statistics
//   - Finding: One validator output, collected into a Report
//   - GeneratedPhrase: Downstream content owned by a Unit
//   - RuleSet: The configuration surface consumed by the validators
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
