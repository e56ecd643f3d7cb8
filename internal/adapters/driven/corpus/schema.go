package corpus

// corpusFile mirrors the on-disk corpus layout.
type corpusFile struct {
	Version string     `json:"version" yaml:"version"`
	Items   []itemFile `json:"items" yaml:"items"`
}

type itemFile struct {
	Index  *int       `json:"index,omitempty" yaml:"index,omitempty"`
	Source string     `json:"source" yaml:"source"`
	Target string     `json:"target" yaml:"target"`
	Units  []unitFile `json:"units" yaml:"units"`
}

type unitFile struct {
	Position   *int          `json:"position,omitempty" yaml:"position,omitempty"`
	Kind       string        `json:"kind,omitempty" yaml:"kind,omitempty"`
	Target     string        `json:"target" yaml:"target"`
	Source     string        `json:"source" yaml:"source"`
	Components []subPairFile `json:"components,omitempty" yaml:"components,omitempty"`
}

type subPairFile struct {
	Target string `json:"target" yaml:"target"`
	Source string `json:"source" yaml:"source"`
}

// phraseFile mirrors the on-disk phrase layout.
type phraseFile struct {
	Phrases []phraseEntry `json:"phrases" yaml:"phrases"`
}

type phraseEntry struct {
	Owner  *int   `json:"owner" yaml:"owner"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
}
