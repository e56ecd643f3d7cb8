// Package memory provides in-memory stores for tests and the MCP server.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
// It backs the MCP server and tests.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]domain.Report),
	}
}

// Save stores or replaces a report.
func (s *ReportStore) Save(_ context.Context, report *domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *report
	cp.Findings = append([]domain.Finding(nil), report.Findings...)
	s.reports[report.ID] = cp
	return nil
}

// Get retrieves a report by ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// List returns report headers, most recent first.
func (s *ReportStore) List(_ context.Context, limit int) ([]domain.ReportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ReportSummary, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, domain.ReportSummary{
			ID:            r.ID,
			CorpusVersion: r.CorpusVersion,
			GeneratedAt:   r.GeneratedAt,
			Fatal:         r.Summary.Fatal,
			Advisory:      r.Summary.Advisory,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].GeneratedAt.After(out[j].GeneratedAt)
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a report.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
