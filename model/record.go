package model

import "sort"

// Record is the closed set of directive kinds a document can hold.
// Consumers (writer, midi encoder, transforms) type-switch over the
// five implementations; there is deliberately no way to add more from
// outside this package.
type Record interface {
	// At is the record's beat position. Untimed records report zero.
	At() Beat
	// Timed is false for records that live outside the beat axis
	// (alias definitions); those sort ahead of timed records and do
	// not count toward document duration.
	Timed() bool

	record()
}

// Tempo sets beats-per-minute from its beat onward. Multiple tempo
// records form a piecewise-constant tempo map.
type Tempo struct {
	Beat Beat
	BPM  float64
}

type TimeSig struct {
	Beat        Beat
	Numerator   uint8
	Denominator uint8
}

type Note struct {
	Beat     Beat
	Pitch    Pitch
	Duration Beat    // beats, zero means instantaneous
	Velocity float64 // normalized 0.0-1.0
}

// Meta is inline, non-global metadata attached at a beat position.
// Global metadata lives in Document.Meta instead.
type Meta struct {
	Beat  Beat
	Scope string
	Key   string
	Value string
}

// Alias names a chord so note lines can reference the whole group.
type Alias struct {
	Name    string
	Pitches []Pitch
}

func (t *Tempo) At() Beat   { return t.Beat }
func (t *TimeSig) At() Beat { return t.Beat }
func (n *Note) At() Beat    { return n.Beat }
func (m *Meta) At() Beat    { return m.Beat }
func (a *Alias) At() Beat   { return Beat{} }

func (t *Tempo) Timed() bool   { return true }
func (t *TimeSig) Timed() bool { return true }
func (n *Note) Timed() bool    { return true }
func (m *Meta) Timed() bool    { return true }
func (a *Alias) Timed() bool   { return false }

func (t *Tempo) record()   {}
func (t *TimeSig) record() {}
func (n *Note) record()    {}
func (m *Meta) record()    {}
func (a *Alias) record()   {}

// End is the beat the record stops influencing: beat+duration for
// notes, the beat itself for everything else.
func End(r Record) Beat {
	if n, ok := r.(*Note); ok {
		return n.Beat.Add(n.Duration)
	}
	return r.At()
}

// SortRecords orders records by beat ascending with a stable sort:
// untimed records go first, records sharing a beat keep their relative
// input order.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Timed() != b.Timed() {
			return !a.Timed()
		}
		return a.At().Less(b.At())
	})
}
