package midi

import (
	"bytes"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mtxtkit/mtxt/constants"
	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/util"
)

type absEvent struct {
	tick uint64
	msg  smf.Message
}

// Encode renders the document as a single-track standard MIDI file at
// constants.PPQN resolution. Beat positions map linearly onto ticks;
// the tempo map travels as set-tempo meta events and never scales the
// tick axis. Output is deterministic for an unmodified document.
func Encode(doc *model.Document) ([]byte, error) {
	events := collectEvents(doc)

	// non-decreasing tick order, insertion order kept within a tick
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var track smf.Track
	var lastTick uint64
	for _, ev := range events {
		track = append(track, smf.Event{
			Delta:   uint32(ev.tick - lastTick),
			Message: ev.msg,
		})
		lastTick = ev.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.PPQN)
	s.Add(track)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, &model.ConversionError{Msg: "could not encode MIDI", Err: err}
	}
	return buf.Bytes(), nil
}

// WriteFile writes the exact bytes Encode returns. The only way this
// can fail beyond Encode is an unwritable destination.
func WriteFile(doc *model.Document, path string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0666); err != nil {
		return &model.ConversionError{Msg: "could not write " + path, Err: err}
	}
	return nil
}

func collectEvents(doc *model.Document) []absEvent {
	var events []absEvent

	// Only the fixed title/copyright keys have MIDI meta equivalents.
	// Every other global key is dropped here on purpose: the MIDI
	// format has nowhere to put them.
	if title, ok := doc.Meta.Get("title"); ok {
		events = append(events, absEvent{
			tick: 0,
			msg:  smf.MetaTrackSequenceName(util.StripQuotes(title)),
		})
	}
	if copyright, ok := doc.Meta.Get("copyright"); ok {
		events = append(events, absEvent{
			tick: 0,
			msg:  smf.MetaCopyright(util.StripQuotes(copyright)),
		})
	}

	for _, r := range doc.Records {
		switch rec := r.(type) {
		case *model.Tempo:
			events = append(events, absEvent{
				tick: beatToTick(rec.Beat),
				msg:  smf.MetaTempo(rec.BPM),
			})

		case *model.TimeSig:
			events = append(events, absEvent{
				tick: beatToTick(rec.Beat),
				msg:  smf.MetaMeter(rec.Numerator, rec.Denominator),
			})

		case *model.Note:
			on := beatToTick(rec.Beat)
			off := beatToTick(rec.Beat.Add(rec.Duration))
			events = append(events, absEvent{
				tick: on,
				msg:  smf.Message(midi.NoteOn(0, rec.Pitch.Key, velocityByte(rec.Velocity))),
			})
			events = append(events, absEvent{
				tick: off,
				msg:  smf.Message(midi.NoteOff(0, rec.Pitch.Key)),
			})

		case *model.Meta:
			events = append(events, absEvent{
				tick: beatToTick(rec.Beat),
				msg:  inlineMetaMessage(rec),
			})

		case *model.Alias:
			// definitions only; the notes using them were expanded at
			// parse time
		}
	}

	return events
}

func inlineMetaMessage(m *model.Meta) smf.Message {
	value := util.StripQuotes(m.Value)
	switch m.Key {
	case "lyric":
		return smf.MetaLyric(value)
	case "marker":
		return smf.MetaMarker(value)
	case "cue":
		return smf.MetaCuepoint(value)
	case "instrument":
		return smf.MetaInstrument(value)
	default:
		return smf.MetaText(value)
	}
}

func beatToTick(b model.Beat) uint64 {
	return uint64(b.Float64()*constants.PPQN + 0.5)
}

func velocityByte(v float64) uint8 {
	scaled := math.Round(v * 127.0)
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 127 {
		scaled = 127
	}
	return uint8(scaled)
}
