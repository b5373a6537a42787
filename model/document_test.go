package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataOrder(t *testing.T) {
	assert := assert.New(t)

	m := NewMetadata()
	m.Set("title", "\"My Song\"")
	m.Set("composer", "someone")
	m.Set("year", "1999")
	assert.Equal([]string{"title", "composer", "year"}, m.Keys())

	// overwriting keeps the original position
	m.Set("composer", "someone else")
	assert.Equal([]string{"title", "composer", "year"}, m.Keys())
	v, ok := m.Get("composer")
	assert.True(ok)
	assert.Equal("someone else", v)

	_, ok = m.Get("missing")
	assert.False(ok)
	assert.Equal(3, m.Len())
}

func TestDocumentDuration(t *testing.T) {
	assert := assert.New(t)

	doc := NewDocument("1.0")
	_, ok := doc.Duration()
	assert.False(ok)

	// untimed records do not contribute
	doc.Records = append(doc.Records, &Alias{Name: "power", Pitches: []Pitch{{Key: 60}, {Key: 67}}})
	_, ok = doc.Duration()
	assert.False(ok)

	one := mustBeat(t, "1")
	doc.Records = append(doc.Records,
		&Note{Beat: mustBeat(t, "0"), Pitch: Pitch{Key: 60}, Duration: one, Velocity: 0.8},
		&Note{Beat: one, Pitch: Pitch{Key: 62}, Duration: one, Velocity: 0.8},
		&Note{Beat: mustBeat(t, "2"), Pitch: Pitch{Key: 64}, Duration: one, Velocity: 0.8},
	)
	d, ok := doc.Duration()
	assert.True(ok)
	assert.Equal("3.0", d.String())

	// duration tracks mutation
	doc.Records = append(doc.Records, &Tempo{Beat: mustBeat(t, "10"), BPM: 90})
	d, _ = doc.Duration()
	assert.Equal("10.0", d.String())
}

func TestSortRecords(t *testing.T) {
	assert := assert.New(t)

	two := mustBeat(t, "2")
	records := []Record{
		&Note{Beat: two, Pitch: Pitch{Key: 64}},
		&Tempo{Beat: Beat{}, BPM: 120},
		&Alias{Name: "root", Pitches: []Pitch{{Key: 60}}},
		&Note{Beat: two, Pitch: Pitch{Key: 67}},
	}
	SortRecords(records)

	// untimed first, ties keep insertion order
	_, ok := records[0].(*Alias)
	assert.True(ok)
	_, ok = records[1].(*Tempo)
	assert.True(ok)
	assert.Equal(uint8(64), records[2].(*Note).Pitch.Key)
	assert.Equal(uint8(67), records[3].(*Note).Pitch.Key)
}

func mustBeat(t *testing.T, s string) Beat {
	t.Helper()
	b, err := ParseBeat(s)
	assert.NoError(t, err)
	return b
}
