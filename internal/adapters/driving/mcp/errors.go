// Package mcp provides an MCP (Model Context Protocol) server adapter for corpuslint.
// It lets AI assistants validate a decomposition corpus and read stored reports.
package mcp

import "errors"

// ErrMissingValidationService is returned when the validation service is not provided.
var ErrMissingValidationService = errors.New("mcp: validation service is required")

// ErrMissingParser is returned when the corpus parser is not provided.
var ErrMissingParser = errors.New("mcp: corpus parser is required")
