package midi

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/parser"
)

const testSong = `mtxt 1.0
meta global title "My Song"
meta global copyright someone 1999
0 tempo 120
0 timesig 3/4
0 note C4 dur=1 vel=0.8
1 note D4 dur=1 vel=0.8
2 note E4 dur=1 vel=0.8
`

func TestEncodeHeader(t *testing.T) {
	assert := assert.New(t)

	doc, err := parser.Parse(testSong)
	assert.NoError(err)

	data, err := Encode(doc)
	assert.NoError(err)
	assert.True(bytes.HasPrefix(data, []byte("MThd")))
}

func TestEncodeDeterminism(t *testing.T) {
	assert := assert.New(t)

	doc, err := parser.Parse(testSong)
	assert.NoError(err)

	first, err := Encode(doc)
	assert.NoError(err)
	second, err := Encode(doc)
	assert.NoError(err)
	assert.Equal(first, second)
}

func TestWriteFile(t *testing.T) {
	assert := assert.New(t)

	doc, err := parser.Parse(testSong)
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "song.mid")
	assert.NoError(WriteFile(doc, path))

	written, err := os.ReadFile(path)
	assert.NoError(err)
	encoded, err := Encode(doc)
	assert.NoError(err)
	assert.Equal(encoded, written)
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	doc, err := parser.Parse(testSong)
	assert.NoError(err)

	data, err := Encode(doc)
	assert.NoError(err)
	decoded, err := Decode(data)
	assert.NoError(err)

	title, ok := decoded.GetMetadata("title")
	assert.True(ok)
	assert.Equal("\"My Song\"", title)
	copyright, _ := decoded.GetMetadata("copyright")
	assert.Equal("\"someone 1999\"", copyright)

	want, _ := doc.Duration()
	got, ok := decoded.Duration()
	assert.True(ok)
	assert.Equal(want, got)

	assert.Len(decoded.Records, len(doc.Records))

	var notes []*model.Note
	for _, r := range decoded.Records {
		if n, ok := r.(*model.Note); ok {
			notes = append(notes, n)
		}
	}
	assert.Len(notes, 3)
	assert.Equal(uint8(60), notes[0].Pitch.Key)
	assert.Equal("1.0", notes[0].Duration.String())
	// velocity is quantized to 127 steps on the way out
	assert.InDelta(0.8, notes[0].Velocity, 0.01)

	tempo := decoded.Records[0].(*model.Tempo)
	assert.Equal(120.0, tempo.BPM)
	sig := decoded.Records[1].(*model.TimeSig)
	assert.Equal(uint8(3), sig.Numerator)
	assert.Equal(uint8(4), sig.Denominator)
}

func TestDecodeNotMidi(t *testing.T) {
	assert := assert.New(t)

	for _, data := range [][]byte{
		[]byte("mtxt 1.0\n0 note C4\n"),
		[]byte("MTh"),
		{},
	} {
		_, err := Decode(data)
		var cerr *model.ConversionError
		assert.ErrorAs(err, &cerr)
		assert.Equal("not a MIDI file", cerr.Msg)
	}
}

func TestDecodeTruncated(t *testing.T) {
	assert := assert.New(t)

	doc, err := parser.Parse(testSong)
	assert.NoError(err)
	data, err := Encode(doc)
	assert.NoError(err)

	_, err = Decode(data[:len(data)/2])
	var cerr *model.ConversionError
	assert.ErrorAs(err, &cerr)
}

func TestDecodeUnmatchedNoteOn(t *testing.T) {
	assert := assert.New(t)

	var track smf.Track
	track = append(track, smf.Event{
		Delta:   0,
		Message: smf.Message(gomidi.NoteOn(0, 60, 100)),
	})
	track.Close(480)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	assert.NoError(s.Add(track))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	assert.NoError(err)

	doc, err := Decode(buf.Bytes())
	assert.NoError(err)
	assert.Len(doc.Records, 1)

	note := doc.Records[0].(*model.Note)
	assert.Equal(uint8(60), note.Pitch.Key)
	assert.True(note.Duration.IsZero())
	assert.InDelta(100.0/127.0, note.Velocity, 1e-9)
}

func TestReadFileMissing(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.mid"))
	assert.Error(err)

	// a missing file is an I/O error, not a conversion error
	var cerr *model.ConversionError
	assert.False(errors.As(err, &cerr))
}
