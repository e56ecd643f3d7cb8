package corpus

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/logger"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// versionPrefix marks a content-derived corpus version.
const versionPrefix = "sha256:"

// Ensure Loader implements the interfaces.
var (
	_ driven.CorpusLoader = (*Loader)(nil)
	_ driven.CorpusParser = (*Loader)(nil)
)

// Loader reads corpus and phrase files from disk.
type Loader struct{}

// NewLoader creates a new file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: file extension %q (want .json, .yaml or .yml)",
			domain.ErrUnsupportedType, filepath.Ext(path))
	}
}

// LoadCorpus reads and validates a corpus file.
func (l *Loader) LoadCorpus(ctx context.Context, path string) (*domain.Corpus, error) {
	data, format, err := read(ctx, path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCorpus(data, format)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", path, err)
	}
	logger.Debug("Loaded corpus %s: version %q, %d items, %d units", path, c.Version(), c.Len(), c.UnitCount())
	return c, nil
}

// LoadPhrases reads a phrase file.
func (l *Loader) LoadPhrases(ctx context.Context, path string) (domain.PhraseSet, error) {
	data, format, err := read(ctx, path)
	if err != nil {
		return nil, err
	}
	phrases, err := ParsePhrases(data, format)
	if err != nil {
		return nil, fmt.Errorf("load phrases %s: %w", path, err)
	}
	logger.Debug("Loaded %d phrases for %d owners from %s", phrases.Len(), len(phrases), path)
	return phrases, nil
}

// ParseCorpus decodes corpus content. See the package-level ParseCorpus.
func (l *Loader) ParseCorpus(data []byte, format string) (*domain.Corpus, error) {
	return ParseCorpus(data, format)
}

// ParsePhrases decodes phrase content. See the package-level ParsePhrases.
func (l *Loader) ParsePhrases(data []byte, format string) (domain.PhraseSet, error) {
	return ParsePhrases(data, format)
}

func read(ctx context.Context, path string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return data, format, nil
}

// ParseCorpus decodes corpus content in the given format and builds a
// validated corpus. Units without positions are numbered from 0 and a
// missing version is replaced by ContentVersion(data).
func ParseCorpus(data []byte, format string) (*domain.Corpus, error) {
	var f corpusFile
	if err := decode(data, format, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCorpus, err)
	}

	items, explicit, err := f.toItems()
	if err != nil {
		return nil, err
	}
	if !explicit {
		assignPositions(items)
	}

	version := f.Version
	if version == "" {
		version = ContentVersion(data)
	}
	return domain.NewCorpus(version, items)
}

// ContentVersion derives a corpus version from file content.
func ContentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return versionPrefix + hex.EncodeToString(sum[:8])
}

// ParsePhrases decodes phrase content in the given format.
// Every malformed phrase is reported, not just the first.
func ParsePhrases(data []byte, format string) (domain.PhraseSet, error) {
	var f phraseFile
	if err := decode(data, format, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	set := make(domain.PhraseSet)
	var errs []error
	for i, p := range f.Phrases {
		if p.Owner == nil {
			errs = append(errs, fmt.Errorf("%w: phrase %d has no owner position", domain.ErrInvalidInput, i))
			continue
		}
		role := domain.PhraseRole(p.Role)
		if role == "" {
			role = domain.RolePractice
		}
		if !role.IsValid() {
			errs = append(errs, fmt.Errorf("%w: phrase %d has role %q", domain.ErrInvalidInput, i, p.Role))
			continue
		}
		set.Add(domain.GeneratedPhrase{
			Owner:  domain.Position(*p.Owner),
			Source: p.Source,
			Target: p.Target,
			Role:   role,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

func decode(data []byte, format string, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(v)
	default:
		return fmt.Errorf("%w: format %q", domain.ErrUnsupportedType, format)
	}
}

// toItems converts the file layout. explicit reports whether positions
// were given; mixing given and missing positions is an error.
func (f corpusFile) toItems() ([]domain.Item, bool, error) {
	items := make([]domain.Item, len(f.Items))
	withPos, withoutPos := 0, 0

	for i, it := range f.Items {
		index := i
		if it.Index != nil {
			index = *it.Index
		}
		item := domain.Item{
			Index:  index,
			Source: it.Source,
			Target: it.Target,
			Units:  make([]domain.Unit, len(it.Units)),
		}

		for j, u := range it.Units {
			kind, err := unitKind(u)
			if err != nil {
				return nil, false, fmt.Errorf("%w: item %d unit %d: %w", domain.ErrInvalidCorpus, i, j, err)
			}

			unit := domain.Unit{
				ItemIndex:  index,
				IntraIndex: j,
				Kind:       kind,
				Target:     u.Target,
				Source:     u.Source,
			}
			if u.Position != nil {
				unit.Position = domain.Position(*u.Position)
				withPos++
			} else {
				withoutPos++
			}
			for _, c := range u.Components {
				unit.Components = append(unit.Components, domain.SubPair{Target: c.Target, Source: c.Source})
			}
			item.Units[j] = unit
		}
		items[i] = item
	}

	if withPos > 0 && withoutPos > 0 {
		return nil, false, fmt.Errorf("%w: %d units have positions and %d do not; give every unit a position or none",
			domain.ErrInvalidCorpus, withPos, withoutPos)
	}
	return items, withPos > 0, nil
}

// assignPositions numbers units sequentially in corpus order. Item
// indices are left as given so NewCorpus can reject gaps.
func assignPositions(items []domain.Item) {
	next := domain.Position(0)
	for i := range items {
		for j := range items[i].Units {
			items[i].Units[j].Position = next
			next++
		}
	}
}

// unitKind infers a missing kind from the presence of components.
func unitKind(u unitFile) (domain.UnitKind, error) {
	if u.Kind == "" {
		if len(u.Components) > 0 {
			return domain.UnitKindComposite, nil
		}
		return domain.UnitKindBase, nil
	}
	kind := domain.UnitKind(strings.ToLower(u.Kind))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: unit kind %q", domain.ErrUnsupportedType, u.Kind)
	}
	if kind == domain.UnitKindBase && len(u.Components) > 0 {
		return "", fmt.Errorf("base unit %q has components", u.Target)
	}
	return kind, nil
}
