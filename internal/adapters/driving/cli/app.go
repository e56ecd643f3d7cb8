package cli

import (
	"fmt"

	"github.com/custodia-labs/corpuslint/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpuslint/internal/adapters/driven/corpus"
	"github.com/custodia-labs/corpuslint/internal/adapters/driven/metrics"
	"github.com/custodia-labs/corpuslint/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/corpuslint/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/core/services"
	"github.com/custodia-labs/corpuslint/internal/logger"
	"github.com/custodia-labs/corpuslint/internal/normalisers/plaintext"
	"github.com/custodia-labs/corpuslint/internal/validators"
	"github.com/custodia-labs/corpuslint/internal/validators/gate"
)

// history selects where reports are kept.
type history int

const (
	historyNone history = iota
	historyMemory
	historySQLite
)

// appOptions configures wiring for one command run.
type appOptions struct {
	history history
	metrics bool
	workers int
}

// app is the wired application behind a command.
type app struct {
	rules      domain.RuleSet
	ruleStore  driven.RuleStore
	loader     *corpus.Loader
	validation *services.ValidationService
	reports    *services.ReportService
	metrics    *metrics.Recorder
	store      *sqlite.Store
}

// newApp wires the application with rules from the --rules file.
func newApp(opts appOptions) (*app, error) {
	ruleStore, err := file.NewRuleStore(rulesPath)
	if err != nil {
		return nil, err
	}
	return wireApp(ruleStore, opts)
}

// wireApp loads the rules and wires the validators, the report history
// and the metrics recorder.
func wireApp(ruleStore driven.RuleStore, opts appOptions) (*app, error) {
	rules, err := ruleStore.Load()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ruleStore.Path(), err)
	}
	if opts.workers > 0 {
		rules.Engine.Workers = opts.workers
		rules.Engine.Shards = opts.workers
	}

	normaliser, err := plaintext.New(rules.Normalisation)
	if err != nil {
		return nil, fmt.Errorf("creating normaliser: %w", err)
	}

	pipeline, err := validators.NewDefaultPipeline(validators.Dependencies{
		Rules:      rules,
		Normaliser: normaliser,
	})
	if err != nil {
		return nil, err
	}

	a := &app{
		rules:     rules,
		ruleStore: ruleStore,
		loader:    corpus.NewLoader(),
	}

	var vopts []services.ValidationOption

	if opts.history != historyNone {
		store, err := a.openHistory(opts.history)
		if err != nil {
			return nil, err
		}
		vopts = append(vopts, services.WithReportStore(store))
	}

	if opts.metrics {
		a.metrics = metrics.NewRecorder()
		vopts = append(vopts, services.WithMetrics(a.metrics))
	}

	a.validation = services.NewValidationService(
		services.NewEvidenceEngine(normaliser, rules.Engine.Shards,
			services.WithNormalisedSource(rules.Consistency.NormaliseSource)),
		pipeline,
		gate.New(normaliser, gate.WithWorkers(rules.Engine.Workers)),
		vopts...,
	)

	logger.Debug("Rules from %s, normaliser %s, validators %v",
		ruleStore.Path(), normaliser.Name(), pipeline.Names())

	return a, nil
}

// openReports wires only the SQLite report history.
func openReports() (*app, error) {
	a := &app{}
	if _, err := a.openHistory(historySQLite); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) openHistory(h history) (driven.ReportStore, error) {
	var store driven.ReportStore
	switch h {
	case historySQLite:
		s, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening report history: %w", err)
		}
		a.store = s
		store = s.ReportStore()
		logger.Debug("Report history at %s", s.Path())
	default:
		store = memory.NewReportStore()
	}
	a.reports = services.NewReportService(store)
	return store, nil
}

// Close releases the report history.
func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
