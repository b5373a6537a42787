package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/parser"
)

func parseRecords(t *testing.T, content string) []model.Record {
	t.Helper()
	doc, err := parser.Parse(content)
	assert.NoError(t, err)
	return doc.Records
}

func TestTranspose(t *testing.T) {
	assert := assert.New(t)

	records := parseRecords(t, "mtxt 1.0\n0 tempo 120\n0 note C4\n1 note E4\n2 note G4\n")
	down, err := Transpose(records, -13)
	assert.NoError(err)

	names := []string{}
	for _, r := range down {
		if n, ok := r.(*model.Note); ok {
			names = append(names, n.Pitch.String())
		}
	}
	assert.Equal([]string{"B2", "Eb3", "F#3"}, names)

	// the input is untouched
	assert.Equal("C4", records[1].(*model.Note).Pitch.String())

	// tempo records pass through unchanged
	tempo := down[0].(*model.Tempo)
	assert.Equal(120.0, tempo.BPM)
}

func TestTransposeAlias(t *testing.T) {
	assert := assert.New(t)

	records := parseRecords(t, "mtxt 1.0\nalias power C4,G4\n")
	up, err := Transpose(records, 2)
	assert.NoError(err)

	alias := up[0].(*model.Alias)
	assert.Equal("D4", alias.Pitches[0].String())
	assert.Equal("A4", alias.Pitches[1].String())
}

func TestTransposeRange(t *testing.T) {
	assert := assert.New(t)

	records := parseRecords(t, "mtxt 1.0\n0 note G9\n")
	_, err := Transpose(records, 1)
	assert.Error(err)

	records = parseRecords(t, "mtxt 1.0\n0 note C-1\n")
	_, err = Transpose(records, -1)
	assert.Error(err)
}

func TestOffset(t *testing.T) {
	assert := assert.New(t)

	records := parseRecords(t, "mtxt 1.0\nalias power C4,G4\n0 note C4\n1 note D4\n2.5 note E4\n")

	forward := Offset(records, 1.5)
	beats := []string{}
	for _, r := range forward {
		if r.Timed() {
			beats = append(beats, r.At().String())
		}
	}
	assert.Equal([]string{"1.5", "2.5", "4.0"}, beats)

	// negative offsets drop records pushed before beat zero
	back := Offset(records, -1.5)
	beats = beats[:0]
	for _, r := range back {
		if r.Timed() {
			beats = append(beats, r.At().String())
		}
	}
	assert.Equal([]string{"1.0"}, beats)

	// the alias survives either direction
	_, ok := back[0].(*model.Alias)
	assert.True(ok)
}

func TestQuantize(t *testing.T) {
	assert := assert.New(t)

	records := parseRecords(t, "mtxt 1.0\n0.12 note C4\n0.13 note D4\n0.49 note E4\n")

	snapped := Quantize(records, 4, 0)
	beats := []string{}
	for _, r := range snapped {
		beats = append(beats, r.At().String())
	}
	assert.Equal([]string{"0.0", "0.25", "0.5"}, beats)

	// grid 0 is a no-op copy
	same := Quantize(records, 0, 0)
	assert.Equal(records, same)
}

func TestQuantizeSwing(t *testing.T) {
	assert := assert.New(t)

	records := parseRecords(t, "mtxt 1.0\n0.25 note C4\n0.5 note D4\n")
	swung := Quantize(records, 4, 1.0)

	// odd grid slots move late by gridSize/6, even slots stay
	assert.Equal("0.29167", swung[0].At().String())
	assert.Equal("0.5", swung[1].At().String())
}
