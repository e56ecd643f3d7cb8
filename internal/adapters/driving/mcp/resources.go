package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for corpuslint resources.
	uriScheme = "corpuslint://"

	// latestID addresses the most recent report.
	latestID = "latest"

	// reportListLimit caps the reports listing.
	reportListLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Recent validation reports, most recent first",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{reportId}",
		Name:        "report",
		Description: "A full validation report; use \"latest\" for the most recent one",
		MIMEType:    "application/json",
	}, s.handleReportResource)
}

// handleReportsResource returns the stored report headers.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	summaries, err := s.ports.Reports.List(ctx, reportListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	type reportInfo struct {
		ID            string `json:"id"`
		CorpusVersion string `json:"corpus_version"`
		GeneratedAt   string `json:"generated_at"`
		Fatal         int    `json:"fatal"`
		Advisory      int    `json:"advisory"`
	}

	infos := make([]reportInfo, len(summaries))
	for i, sum := range summaries {
		infos[i] = reportInfo{
			ID:            sum.ID,
			CorpusVersion: sum.CorpusVersion,
			GeneratedAt:   sum.GeneratedAt.Format(time.RFC3339),
			Fatal:         sum.Fatal,
			Advisory:      sum.Advisory,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling reports: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleReportResource returns one full report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractReportID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var (
		report *domain.Report
		err    error
	)
	if id == latestID {
		report, err = s.ports.Reports.Latest(ctx)
	} else {
		report, err = s.ports.Reports.Get(ctx, id)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractReportID extracts the report ID from a URI like corpuslint://reports/{reportId}.
func extractReportID(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
