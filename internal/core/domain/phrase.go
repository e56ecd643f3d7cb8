package domain

import "sort"

// PhraseRole distinguishes the culminating anchor phrase from practice phrases.
type PhraseRole string

// Available phrase roles.
const (
	// RolePractice is an ordinary practice phrase.
	RolePractice PhraseRole = "practice"

	// RoleAnchor must equal the owning item's full target text.
	// It is only meaningful when the owning unit is final in its item.
	RoleAnchor PhraseRole = "anchor"
)

// IsValid returns true if the role is recognised.
func (r PhraseRole) IsValid() bool {
	return r == RolePractice || r == RoleAnchor
}

// GeneratedPhrase is externally generated content owned by one unit.
type GeneratedPhrase struct {
	// Owner is the global position of the owning unit.
	Owner Position

	// Source is the phrase's source-language text.
	Source string

	// Target is the phrase's target-language text.
	Target string

	// Role is anchor or practice.
	Role PhraseRole
}

// PhraseSet maps a unit position to the phrases generated for it.
type PhraseSet map[Position][]GeneratedPhrase

// Owners returns the owning positions in increasing order.
func (s PhraseSet) Owners() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the total number of phrases.
func (s PhraseSet) Len() int {
	n := 0
	for _, ps := range s {
		n += len(ps)
	}
	return n
}

// Add appends a phrase under its owner.
func (s PhraseSet) Add(p GeneratedPhrase) {
	s[p.Owner] = append(s[p.Owner], p)
}
