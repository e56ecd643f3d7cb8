package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/adapters/driven/corpus"
)

func TestNewServer(t *testing.T) {
	t.Run("nil validation service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: corpus.NewLoader()})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingValidationService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Validation: &mockValidationService{},
			Parser:     corpus.NewLoader(),
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports Ports
		want  error
	}{
		{"empty", Ports{}, ErrMissingValidationService},
		{"missing parser", Ports{Validation: &mockValidationService{}}, ErrMissingParser},
		{"required only", Ports{Validation: &mockValidationService{}, Parser: corpus.NewLoader()}, nil},
		{"all ports", Ports{
			Validation: &mockValidationService{},
			Parser:     corpus.NewLoader(),
			Reports:    &mockReportService{},
			Metrics:    http.NotFoundHandler(),
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServer_HandlerMountsMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("corpuslint_validation_runs_total 1\n"))
	})

	server, err := NewServer(&Ports{
		Validation: &mockValidationService{},
		Parser:     corpus.NewLoader(),
		Metrics:    metrics,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "corpuslint_validation_runs_total")
}
