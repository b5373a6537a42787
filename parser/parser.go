package parser

import (
	"strconv"
	"strings"

	"github.com/mtxtkit/mtxt/constants"
	"github.com/mtxtkit/mtxt/model"
)

// Parse turns MTXT source text into a Document. Any malformed line
// fails the whole parse with a *model.ParseError; there is no partial
// result.
func Parse(content string) (*model.Document, error) {
	p := newParser()

	for i, line := range strings.Split(content, "\n") {
		if err := p.parseLine(i+1, line); err != nil {
			return nil, err
		}
	}

	if !p.sawHeader {
		return nil, &model.ParseError{Msg: "missing version declaration"}
	}

	p.doc.Sort()
	return p.doc, nil
}

type parser struct {
	doc       *model.Document
	sawHeader bool
	aliases   map[string]*model.Alias
}

func newParser() *parser {
	return &parser{
		doc:     model.NewDocument(""),
		aliases: make(map[string]*model.Alias),
	}
}

func (p *parser) parseLine(lineNo int, line string) error {
	line = stripComment(strings.TrimSpace(line))

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	fail := func(msg, token string) error {
		return &model.ParseError{Line: lineNo, Token: token, Msg: msg}
	}

	if !p.sawHeader {
		if parts[0] != "mtxt" || len(parts) != 2 {
			return fail("expected \"mtxt <version>\" header, got", line)
		}
		if err := checkVersion(parts[1]); err != nil {
			return fail(err.Error(), parts[1])
		}
		p.doc.Version = parts[1]
		p.sawHeader = true
		return nil
	}

	switch parts[0] {
	case "mtxt":
		return fail("duplicate header", line)

	case "meta":
		return p.parseMeta(lineNo, model.Beat{}, parts[1:])

	case "alias":
		return p.parseAlias(lineNo, parts[1:])
	}

	// everything else is "<beat> <directive> [args]"
	beat, err := model.ParseBeat(parts[0])
	if err != nil {
		return fail("cannot parse", line)
	}
	if len(parts) < 2 {
		return fail("beat position without a directive", line)
	}

	switch parts[1] {
	case "tempo":
		return p.parseTempo(lineNo, beat, parts[2:])
	case "timesig":
		return p.parseTimeSig(lineNo, beat, parts[2:])
	case "note":
		return p.parseNote(lineNo, beat, parts[2:])
	case "meta":
		return p.parseMeta(lineNo, beat, parts[2:])
	default:
		return fail("unknown event type", parts[1])
	}
}

func (p *parser) parseTempo(lineNo int, beat model.Beat, args []string) error {
	if len(args) != 1 {
		return &model.ParseError{Line: lineNo, Msg: "tempo event requires a BPM value"}
	}
	bpm, err := strconv.ParseFloat(args[0], 64)
	if err != nil || bpm <= 0 {
		return &model.ParseError{Line: lineNo, Token: args[0], Msg: "invalid BPM value"}
	}
	p.doc.Records = append(p.doc.Records, &model.Tempo{Beat: beat, BPM: bpm})
	return nil
}

func (p *parser) parseTimeSig(lineNo int, beat model.Beat, args []string) error {
	if len(args) != 1 {
		return &model.ParseError{Line: lineNo, Msg: "timesig event requires a signature"}
	}
	numStr, denStr, ok := strings.Cut(args[0], "/")
	if !ok {
		return &model.ParseError{Line: lineNo, Token: args[0], Msg: "invalid time signature"}
	}
	num, err1 := strconv.ParseUint(numStr, 10, 8)
	den, err2 := strconv.ParseUint(denStr, 10, 8)
	if err1 != nil || err2 != nil || num == 0 || den == 0 {
		return &model.ParseError{Line: lineNo, Token: args[0], Msg: "invalid time signature"}
	}
	p.doc.Records = append(p.doc.Records, &model.TimeSig{
		Beat:        beat,
		Numerator:   uint8(num),
		Denominator: uint8(den),
	})
	return nil
}

func (p *parser) parseNote(lineNo int, beat model.Beat, args []string) error {
	if len(args) == 0 {
		return &model.ParseError{Line: lineNo, Msg: "note event requires a note name"}
	}

	// Leading tokens up to the first key=value form the pitch list.
	// Both "C4,E4,G4" and "C4 E4 G4" are chords at this beat.
	var pitches []model.Pitch
	i := 0
	for ; i < len(args) && !strings.Contains(args[i], "="); i++ {
		for _, tok := range strings.Split(args[i], ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if alias, ok := p.aliases[tok]; ok {
				pitches = append(pitches, alias.Pitches...)
				continue
			}
			pitch, err := model.ParsePitch(tok)
			if err != nil {
				return &model.ParseError{Line: lineNo, Token: tok, Msg: "invalid note"}
			}
			pitches = append(pitches, pitch)
		}
	}
	if len(pitches) == 0 {
		return &model.ParseError{Line: lineNo, Msg: "note event requires a note name"}
	}

	duration := model.BeatFromFloat(constants.DefaultDuration)
	velocity := float64(constants.DefaultVelocity)

	for _, arg := range args[i:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return &model.ParseError{Line: lineNo, Token: arg, Msg: "invalid note"}
		}
		switch key {
		case "dur":
			d, err := model.ParseBeat(value)
			if err != nil {
				return &model.ParseError{Line: lineNo, Token: arg, Msg: "invalid duration value"}
			}
			duration = d
		case "vel":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return &model.ParseError{Line: lineNo, Token: arg, Msg: "invalid velocity value"}
			}
			if v < 0.0 || v > 1.0 {
				return &model.ParseError{Line: lineNo, Token: arg, Msg: "velocity must be 0.0-1.0"}
			}
			velocity = v
		default:
			return &model.ParseError{Line: lineNo, Token: arg, Msg: "unsupported directive"}
		}
	}

	for _, pitch := range pitches {
		p.doc.Records = append(p.doc.Records, &model.Note{
			Beat:     beat,
			Pitch:    pitch,
			Duration: duration,
			Velocity: velocity,
		})
	}
	return nil
}

func (p *parser) parseMeta(lineNo int, beat model.Beat, args []string) error {
	if len(args) < 3 {
		return &model.ParseError{Line: lineNo, Msg: "meta event requires scope, key and value"}
	}

	scope := args[0]
	key := args[1]
	value := strings.Join(args[2:], " ")

	if scope == "global" {
		p.doc.Meta.Set(key, value)
		return nil
	}

	p.doc.Records = append(p.doc.Records, &model.Meta{
		Beat:  beat,
		Scope: scope,
		Key:   key,
		Value: value,
	})
	return nil
}

func (p *parser) parseAlias(lineNo int, args []string) error {
	if len(args) < 2 {
		return &model.ParseError{Line: lineNo, Msg: "alias requires a name and at least one note"}
	}

	name := args[0]
	if model.IsPitchName(name) {
		return &model.ParseError{Line: lineNo, Token: name, Msg: "cannot redefine note as alias"}
	}

	pitches, err := model.ParsePitchList(strings.Join(args[1:], " "))
	if err != nil {
		return &model.ParseError{Line: lineNo, Msg: err.Error()}
	}

	alias := &model.Alias{Name: name, Pitches: pitches}
	p.aliases[name] = alias
	p.doc.Records = append(p.doc.Records, alias)
	return nil
}

func checkVersion(s string) error {
	major, minor, ok := strings.Cut(s, ".")
	if !ok || !allDigits(major) || !allDigits(minor) {
		return &model.ParseError{Msg: "invalid version"}
	}
	if major != strconv.Itoa(constants.SupportedMajor) {
		return &model.ParseError{Msg: "unsupported version"}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// stripComment drops a trailing // comment, ignoring :// so URLs in
// metadata values survive.
func stripComment(line string) string {
	start := 0
	for {
		idx := strings.Index(line[start:], "//")
		if idx < 0 {
			return line
		}
		abs := start + idx
		if abs == 0 || line[abs-1] != ':' {
			return strings.TrimSpace(line[:abs])
		}
		start = abs + 2
	}
}
