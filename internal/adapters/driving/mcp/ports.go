package mcp

import (
	"net/http"

	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Validation runs the validators.
	Validation driving.ValidationService

	// Parser decodes corpus and phrase payloads sent by the client.
	Parser driven.CorpusParser

	// Reports reads stored reports. Optional.
	Reports driving.ReportService

	// Metrics is mounted at /metrics in HTTP mode. Optional.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Validation == nil {
		return ErrMissingValidationService
	}
	if p.Parser == nil {
		return ErrMissingParser
	}
	return nil
}
