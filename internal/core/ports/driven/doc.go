// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser: Text folding and tokenisation shared by every validator
//   - ItemValidator: Per-item checks against the evidence snapshot
//   - ItemPipeline: Parallel execution of ItemValidators
//   - PhraseValidator: Availability gate over generated content
//   - CorpusLoader: Reads corpus and phrase files
//   - RuleStore: Rule configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReportStore: Report history. Without it, reports are not persisted.
//   - MetricsRecorder: Run telemetry. Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, validator, or normaliser package
package driven
