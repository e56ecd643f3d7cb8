package gate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// State is the lifecycle state of an Availability.
type State int32

// Availability lifecycle states.
const (
	StateNotStarted State = iota
	StateSweeping
	StateFrozen
)

// String returns the string representation.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateSweeping:
		return "sweeping"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// cancelCheckEvery is how many units are swept between context checks.
const cancelCheckEvery = 256

// Availability records, for every token of the corpus, the position of
// the unit that first introduces it. A token is available to a phrase
// owned by position p when it is introduced before p or by p itself.
//
// An Availability is built by one Sweep and is immutable once frozen;
// queries need no locking after that.
type Availability struct {
	normaliser driven.Normaliser

	mu    sync.Mutex
	state atomic.Int32

	version    string
	introduced map[string]domain.Position
	unitTokens map[domain.Position][]string
}

// NewAvailability creates an empty availability in the NotStarted state.
func NewAvailability(normaliser driven.Normaliser) *Availability {
	return &Availability{normaliser: normaliser}
}

// State returns the current lifecycle state.
func (a *Availability) State() State {
	return State(a.state.Load())
}

// Version returns the corpus version the availability was frozen for.
func (a *Availability) Version() string {
	if a.State() != StateFrozen {
		return ""
	}
	return a.version
}

// Sweep walks the corpus once in position order and freezes.
//
// Sweeping a frozen availability again for the same corpus version is a
// no-op. A different version returns ErrAvailabilityFrozen. A cancelled
// sweep resets to NotStarted and keeps nothing.
func (a *Availability) Sweep(ctx context.Context, corpus *domain.Corpus) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.State() == StateFrozen {
		if a.version == corpus.Version() {
			return nil
		}
		return fmt.Errorf("sweep version %q: %w (frozen at %q)", corpus.Version(), domain.ErrAvailabilityFrozen, a.version)
	}

	a.state.Store(int32(StateSweeping))

	introduced := make(map[string]domain.Position)
	unitTokens := make(map[domain.Position][]string, corpus.UnitCount())

	for i, u := range corpus.Units() {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				a.state.Store(int32(StateNotStarted))
				return fmt.Errorf("sweep availability: %w", err)
			}
		}

		tokens := a.normaliser.Tokens(u.Target)
		unitTokens[u.Position] = tokens
		for _, t := range tokens {
			if _, ok := introduced[t]; !ok {
				introduced[t] = u.Position
			}
		}
	}

	a.version = corpus.Version()
	a.introduced = introduced
	a.unitTokens = unitTokens
	a.state.Store(int32(StateFrozen))

	return nil
}

// IntroducedAt returns the position that first introduces a token.
func (a *Availability) IntroducedAt(token string) (domain.Position, bool) {
	if a.State() != StateFrozen {
		return 0, false
	}
	p, ok := a.introduced[token]
	return p, ok
}

// Allowed reports whether a token may appear in a phrase owned by p.
func (a *Availability) Allowed(token string, p domain.Position) bool {
	intro, ok := a.IntroducedAt(token)
	return ok && intro <= p
}

// UnitTokens returns the normalised tokens of the unit at p.
func (a *Availability) UnitTokens(p domain.Position) []string {
	if a.State() != StateFrozen {
		return nil
	}
	return a.unitTokens[p]
}

// AvailableBefore returns, sorted, every token introduced strictly before p.
func (a *Availability) AvailableBefore(p domain.Position) []string {
	if a.State() != StateFrozen {
		return nil
	}
	var out []string
	for t, intro := range a.introduced {
		if intro < p {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
