package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	pkgerrors "github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/util"
)

type openNote struct {
	beat     model.Beat
	velocity float64
}

// Decode reads a standard MIDI byte stream back into a Document.
// All tracks are merged onto the shared tick axis; ticks convert to
// beats through the header resolution alone, so tempo events change
// wall-clock timing but never beat positions.
func Decode(data []byte) (doc *model.Document, e error) {
	if len(data) < 4 || !bytes.Equal(data[:4], []byte("MThd")) {
		return nil, &model.ConversionError{Msg: "not a MIDI file"}
	}

	// the smf reader panics on some malformed inputs
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			e = &model.ConversionError{Msg: "invalid MIDI data", Err: fmt.Errorf("%v", r)}
		}
	}()

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, &model.ConversionError{Msg: "invalid MIDI data", Err: err}
	}

	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, &model.ConversionError{Msg: "unsupported MIDI time format"}
	}
	ppqn := uint64(ticks)
	if ppqn == 0 {
		return nil, &model.ConversionError{Msg: "invalid MIDI data", Err: errors.New("zero resolution")}
	}

	doc = model.NewDocument("1.0")
	pressed := make(map[uint16][]openNote)

	for _, track := range s.Tracks {
		var absTicks uint64
		for _, event := range track {
			absTicks += uint64(event.Delta)
			beat := tickToBeat(absTicks, ppqn)

			var channel, key, velocity uint8
			var bpm float64
			var num, den uint8
			var text string

			msg := event.Message
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				id := noteId(channel, key)
				pressed[id] = append(pressed[id], openNote{
					beat:     beat,
					velocity: float64(velocity) / 127.0,
				})

			case msg.GetNoteEnd(&channel, &key):
				id := noteId(channel, key)
				open := pressed[id]
				if len(open) == 0 {
					// stray note-off, nothing to pair with
					continue
				}
				on := open[0]
				pressed[id] = open[1:]
				doc.Records = append(doc.Records, &model.Note{
					Beat:     on.beat,
					Pitch:    model.Pitch{Key: key},
					Duration: beat.Sub(on.beat),
					Velocity: on.velocity,
				})

			case msg.GetMetaTempo(&bpm):
				doc.Records = append(doc.Records, &model.Tempo{Beat: beat, BPM: bpm})

			case msg.GetMetaMeter(&num, &den):
				doc.Records = append(doc.Records, &model.TimeSig{
					Beat:        beat,
					Numerator:   num,
					Denominator: den,
				})

			case msg.GetMetaTrackName(&text):
				if _, ok := doc.Meta.Get("title"); !ok && text != "" {
					doc.Meta.Set("title", util.QuoteIfNeeded(text))
				}

			case msg.GetMetaCopyright(&text):
				if _, ok := doc.Meta.Get("copyright"); !ok && text != "" {
					doc.Meta.Set("copyright", util.QuoteIfNeeded(text))
				}
			}
		}
	}

	// a note-on never matched before end of track becomes a
	// zero-duration note rather than an error
	ids := util.GetKeys(pressed)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		for _, on := range pressed[id] {
			doc.Records = append(doc.Records, &model.Note{
				Beat:     on.beat,
				Pitch:    model.Pitch{Key: uint8(id & 0xff)},
				Duration: model.Beat{},
				Velocity: on.velocity,
			})
		}
	}

	doc.Sort()
	return doc, nil
}

// ReadFile decodes a MIDI file from disk. A missing or unreadable file
// is an I/O failure, kept distinct from ConversionError so callers can
// tell file problems from data problems.
func ReadFile(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not read midi file %s", path)
	}
	return Decode(data)
}

func noteId(channel, key uint8) uint16 {
	return uint16(channel)<<8 | uint16(key)
}

func tickToBeat(ticks, ppqn uint64) model.Beat {
	return model.BeatFromParts(uint32(ticks/ppqn), float64(ticks%ppqn)/float64(ppqn))
}
