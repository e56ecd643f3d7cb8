package driven

import (
	"context"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// CorpusLoader reads producer output into the domain model.
type CorpusLoader interface {
	// LoadCorpus reads and structurally validates a corpus.
	// Structural defects return an error wrapping domain.ErrInvalidCorpus.
	LoadCorpus(ctx context.Context, path string) (*domain.Corpus, error)

	// LoadPhrases reads generated phrases grouped by owning position.
	LoadPhrases(ctx context.Context, path string) (domain.PhraseSet, error)
}

// CorpusParser decodes in-memory producer output. Used by adapters that
// receive content instead of file paths.
type CorpusParser interface {
	// ParseCorpus decodes corpus content in the given format ("json" or "yaml").
	ParseCorpus(data []byte, format string) (*domain.Corpus, error)

	// ParsePhrases decodes phrase content in the given format.
	ParsePhrases(data []byte, format string) (domain.PhraseSet, error)
}
