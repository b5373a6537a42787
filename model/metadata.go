package model

// Metadata is the document-level key/value store. Keys are unique and
// case-sensitive; iteration follows insertion order so serialization
// is deterministic. Values are kept verbatim, quotes included.
type Metadata struct {
	keys   []string
	values map[string]string
}

func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Set inserts or overwrites in place; overwriting does not move the
// key to the end.
func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Metadata) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a
// copy.
func (m *Metadata) Keys() []string {
	res := make([]string, len(m.keys))
	copy(res, m.keys)
	return res
}
