package catalogue

// Lookup resolves effect ids to definitions. Implementations must be safe for
// concurrent readers.
type Lookup interface {
	Definition(id string) (Definition, bool)
}

// Catalogue is an immutable in-memory Lookup
type Catalogue struct {
	definitions map[string]Definition
}

// New builds a catalogue; later definitions win on duplicate ids
func New(definitions ...Definition) *Catalogue {
	c := &Catalogue{definitions: make(map[string]Definition, len(definitions))}
	for _, def := range definitions {
		c.definitions[def.ID] = def
	}
	return c
}

// Definition implements Lookup
func (c *Catalogue) Definition(id string) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	def, ok := c.definitions[id]
	return def, ok
}

// Len returns the number of definitions
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.definitions)
}
