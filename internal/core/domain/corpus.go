package domain

import (
	"fmt"
)

// Position is the global total-order key of a Unit.
// It is derived from (item index, intra index) when the corpus is built
// and is never recomputed afterwards.
type Position int

// UnitKind distinguishes atomic units from units built from smaller pairs.
type UnitKind string

// Available unit kinds.
const (
	// UnitKindBase is an atomic unit.
	UnitKindBase UnitKind = "base"

	// UnitKindComposite is built from an ordered list of SubPairs.
	UnitKindComposite UnitKind = "composite"
)

// IsValid returns true if the unit kind is recognised.
func (k UnitKind) IsValid() bool {
	return k == UnitKindBase || k == UnitKindComposite
}

// String returns the string representation.
func (k UnitKind) String() string {
	return string(k)
}

// SubPair is one component of a composite unit.
type SubPair struct {
	// Target is the component's target-language text.
	Target string

	// Source is the component's source-language text.
	Source string
}

// Unit is one reusable sub-piece of an Item's target text.
type Unit struct {
	// ItemIndex refers back to the owning Item.
	ItemIndex int

	// IntraIndex is the 0-based position within the Item.
	IntraIndex int

	// Position is the corpus-wide ordering key.
	Position Position

	// Kind is BASE or COMPOSITE.
	Kind UnitKind

	// Target is the unit's target-language text.
	Target string

	// Source is the unit's source-language text.
	Source string

	// Components is populated only for composite units.
	Components []SubPair

	// FinalInItem is true iff this is the last unit of its Item.
	FinalInItem bool
}

// IsBase reports whether the unit is atomic.
func (u *Unit) IsBase() bool {
	return u.Kind == UnitKindBase
}

// Item is one corpus entry.
type Item struct {
	// Index is the 0-based corpus order.
	Index int

	// Source is the item's source-language text.
	Source string

	// Target is the item's target-language text.
	Target string

	// Units is the ordered decomposition of Target.
	Units []Unit
}

// Final returns the last unit of the item, if any.
func (it *Item) Final() (*Unit, bool) {
	if len(it.Units) == 0 {
		return nil, false
	}
	return &it.Units[len(it.Units)-1], true
}

// Corpus is an immutable, versioned sequence of Items.
// Once built it is shared read-only by every validator.
type Corpus struct {
	version    string
	items      []Item
	byPosition map[Position]*Unit
	ordered    []*Unit
}

// NewCorpus validates the structure of items and returns a Corpus.
// Derived attributes (FinalInItem) are recomputed from unit order.
// Any structural defect returns an error wrapping ErrInvalidCorpus.
func NewCorpus(version string, items []Item) (*Corpus, error) {
	c := &Corpus{
		version:    version,
		items:      make([]Item, len(items)),
		byPosition: make(map[Position]*Unit),
	}

	for i := range items {
		src := items[i]
		if src.Index != i {
			return nil, fmt.Errorf("%w: item at offset %d has index %d (indices must be contiguous from 0)",
				ErrInvalidCorpus, i, src.Index)
		}

		item := src
		item.Units = make([]Unit, len(src.Units))
		copy(item.Units, src.Units)

		for j := range item.Units {
			u := &item.Units[j]
			if u.IntraIndex != j {
				return nil, fmt.Errorf("%w: item %d unit %d has intra index %d",
					ErrInvalidCorpus, i, j, u.IntraIndex)
			}
			if u.ItemIndex != i {
				return nil, fmt.Errorf("%w: item %d unit %d refers to item %d",
					ErrInvalidCorpus, i, j, u.ItemIndex)
			}
			if !u.Kind.IsValid() {
				return nil, fmt.Errorf("%w: item %d unit %d: %w %q",
					ErrInvalidCorpus, i, j, ErrUnsupportedType, u.Kind)
			}
			u.FinalInItem = j == len(item.Units)-1
			if len(u.Components) > 0 {
				comps := make([]SubPair, len(u.Components))
				copy(comps, u.Components)
				u.Components = comps
			}
		}
		c.items[i] = item
	}

	var prev *Unit
	for i := range c.items {
		for j := range c.items[i].Units {
			u := &c.items[i].Units[j]
			if existing, ok := c.byPosition[u.Position]; ok {
				return nil, fmt.Errorf("%w: %w: position %d used by item %d unit %d and item %d unit %d",
					ErrInvalidCorpus, ErrDuplicatePosition, u.Position,
					existing.ItemIndex, existing.IntraIndex, u.ItemIndex, u.IntraIndex)
			}
			if prev != nil && u.Position <= prev.Position {
				return nil, fmt.Errorf("%w: position %d (item %d unit %d) does not follow position %d",
					ErrInvalidCorpus, u.Position, u.ItemIndex, u.IntraIndex, prev.Position)
			}
			c.byPosition[u.Position] = u
			c.ordered = append(c.ordered, u)
			prev = u
		}
	}

	return c, nil
}

// Version returns the corpus version the snapshot was built from.
func (c *Corpus) Version() string {
	return c.version
}

// Len returns the number of items.
func (c *Corpus) Len() int {
	return len(c.items)
}

// UnitCount returns the number of units across all items.
func (c *Corpus) UnitCount() int {
	return len(c.ordered)
}

// Items returns the items in corpus order. Callers must not modify them.
func (c *Corpus) Items() []Item {
	return c.items
}

// Item returns the item at index i.
func (c *Corpus) Item(i int) (*Item, bool) {
	if i < 0 || i >= len(c.items) {
		return nil, false
	}
	return &c.items[i], true
}

// Unit returns the unit at a global position.
func (c *Corpus) Unit(p Position) (*Unit, bool) {
	u, ok := c.byPosition[p]
	return u, ok
}

// Units returns every unit in increasing position order.
func (c *Corpus) Units() []*Unit {
	return c.ordered
}

// AssignPositions fills ItemIndex, IntraIndex and sequential Positions
// for items that were built without them. Items are re-indexed in slice
// order. It is used when corpora are built in code rather than loaded.
func AssignPositions(items []Item) {
	next := Position(0)
	for i := range items {
		items[i].Index = i
		for j := range items[i].Units {
			items[i].Units[j].ItemIndex = i
			items[i].Units[j].IntraIndex = j
			items[i].Units[j].Position = next
			next++
		}
	}
}
