// Package services implements the driving port interfaces.
// Services contain the core validation logic and orchestrate
// calls to driven ports (adapters).
//
// The evidence engine shards items across workers and merges partial
// tables; the validation service then runs the item pipeline and the
// phrase gate concurrently and aggregates their findings into a report.
//
// Services are pure Go with no CGO and perform no I/O of their own.
package services
