package models

// ReferenceCatalog maps human-readable names to remote identifiers. Names are
// matched exactly, without case folding or trimming. Insertion order is kept
// so listings follow the order of the remote response.
type ReferenceCatalog struct {
	ids   map[string]string
	names []string
}

// NewReferenceCatalog returns an empty catalog.
func NewReferenceCatalog() ReferenceCatalog {
	return ReferenceCatalog{ids: map[string]string{}}
}

// Add registers name -> id. A repeated name keeps its first position and
// takes the latest id.
func (c *ReferenceCatalog) Add(name, id string) {
	if c.ids == nil {
		c.ids = map[string]string{}
	}
	if _, seen := c.ids[name]; !seen {
		c.names = append(c.names, name)
	}
	c.ids[name] = id
}

// Lookup returns the id registered for name.
func (c ReferenceCatalog) Lookup(name string) (string, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// Names returns the catalog names in insertion order.
func (c ReferenceCatalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c ReferenceCatalog) Len() int {
	return len(c.names)
}

func (c ReferenceCatalog) IsEmpty() bool {
	return len(c.names) == 0
}

// CatalogListing is what the operator inspects before a run.
type CatalogListing struct {
	Locations         []Location `json:"locations"`
	Skills            []Skill    `json:"skills"`
	Metrics           []Metric   `json:"metrics"`
	AvailablePatterns []string   `json:"available_patterns"`
	Warnings          []string   `json:"warnings,omitempty"`
}

// ReferenceFixture is a canned set of remote reference data, used by the
// mock API client.
type ReferenceFixture struct {
	Locations []Location        `json:"locations"`
	Skills    []Skill           `json:"skills"`
	Metrics   []Metric          `json:"metrics"`
	Patterns  []PatternTemplate `json:"patterns"`
}
