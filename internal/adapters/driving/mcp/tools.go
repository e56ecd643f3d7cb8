package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// Payload formats accepted by validate_corpus.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// ValidateInput is the input schema for the validate_corpus tool.
type ValidateInput struct {
	Corpus      string `json:"corpus" jsonschema:"the corpus document, with items and their units"`
	Phrases     string `json:"phrases,omitempty" jsonschema:"optional generated phrases; enables the gate validator"`
	Format      string `json:"format,omitempty" jsonschema:"payload format: json or yaml (default json)"`
	MaxFindings int    `json:"max_findings,omitempty" jsonschema:"maximum number of findings to return (default all)"`
}

// ValidateOutput is the output schema for the validate_corpus tool.
type ValidateOutput struct {
	ReportID      string          `json:"report_id"`
	CorpusVersion string          `json:"corpus_version"`
	Fatal         int             `json:"fatal"`
	Advisory      int             `json:"advisory"`
	Counts        []CountOutput   `json:"counts"`
	Findings      []FindingOutput `json:"findings"`
	Truncated     bool            `json:"truncated,omitempty"`
}

// CountOutput is the number of findings of one kind.
type CountOutput struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// FindingOutput represents a single finding.
type FindingOutput struct {
	Kind         string `json:"kind"`
	Severity     string `json:"severity"`
	ItemIndex    int    `json:"item_index"`
	UnitPosition *int   `json:"unit_position,omitempty"`
	Message      string `json:"message"`
	Remediation  string `json:"remediation,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "validate_corpus",
		Description: "Validate a position-ordered decomposition corpus and, when phrases " +
			"are given, check them against the introduction order",
	}, s.handleValidate)
}

// handleValidate handles the validate_corpus tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	if input.Corpus == "" {
		return nil, ValidateOutput{}, errors.New("corpus is required")
	}

	format := input.Format
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatYAML {
		return nil, ValidateOutput{}, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}

	corpus, err := s.ports.Parser.ParseCorpus([]byte(input.Corpus), format)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	var phrases domain.PhraseSet
	if input.Phrases != "" {
		phrases, err = s.ports.Parser.ParsePhrases([]byte(input.Phrases), format)
		if err != nil {
			return nil, ValidateOutput{}, err
		}
	}

	report, err := s.ports.Validation.Validate(ctx, corpus, phrases)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	return nil, toOutput(report, input.MaxFindings), nil
}

func toOutput(report *domain.Report, limit int) ValidateOutput {
	out := ValidateOutput{
		ReportID:      report.ID,
		CorpusVersion: report.CorpusVersion,
		Fatal:         report.Summary.Fatal,
		Advisory:      report.Summary.Advisory,
		Counts:        make([]CountOutput, len(report.Summary.Counts)),
	}

	for i, c := range report.Summary.Counts {
		out.Counts[i] = CountOutput{Kind: c.Kind.String(), Severity: string(c.Severity), Count: c.Count}
	}

	findings := report.Findings
	if limit > 0 && len(findings) > limit {
		findings = findings[:limit]
		out.Truncated = true
	}

	out.Findings = make([]FindingOutput, len(findings))
	for i := range findings {
		f := &findings[i]
		out.Findings[i] = FindingOutput{
			Kind:        f.Kind.String(),
			Severity:    string(f.Severity),
			ItemIndex:   f.ItemIndex,
			Message:     f.Message,
			Remediation: f.RemediationHint,
		}
		if f.UnitPosition != nil {
			p := int(*f.UnitPosition)
			out.Findings[i].UnitPosition = &p
		}
	}

	return out
}
