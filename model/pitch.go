package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical spelling for each pitch class, C4 = MIDI 60.
var pitchClassNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

var pitchClassOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Pitch is a concrete MIDI note number 0-127.
type Pitch struct {
	Key uint8
}

func ParsePitch(s string) (Pitch, error) {
	if len(s) < 2 {
		return Pitch{}, fmt.Errorf("invalid note %q", s)
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	offset, ok := pitchClassOffsets[letter]
	if !ok {
		return Pitch{}, fmt.Errorf("invalid note %q", s)
	}

	rest := s[1:]
	for len(rest) > 0 {
		if rest[0] == '#' {
			offset++
		} else if rest[0] == 'b' {
			offset--
		} else {
			break
		}
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Pitch{}, fmt.Errorf("invalid note %q", s)
	}

	key := (octave+1)*12 + offset
	if key < 0 || key > 127 {
		return Pitch{}, fmt.Errorf("note %q out of MIDI range", s)
	}
	return Pitch{Key: uint8(key)}, nil
}

// IsPitchName reports whether s looks like a note name, used to keep
// alias names from shadowing real notes.
func IsPitchName(s string) bool {
	_, err := ParsePitch(s)
	return err == nil
}

func (p Pitch) Transpose(semitones int) (Pitch, error) {
	key := int(p.Key) + semitones
	if key < 0 || key > 127 {
		return Pitch{}, fmt.Errorf("transposed note %d out of MIDI range", key)
	}
	return Pitch{Key: uint8(key)}, nil
}

func (p Pitch) String() string {
	name := pitchClassNames[p.Key%12]
	octave := int(p.Key)/12 - 1
	return name + strconv.Itoa(octave)
}

// ParsePitchList parses a comma separated pitch list like "C4,E4, G4".
func ParsePitchList(s string) ([]Pitch, error) {
	var res []Pitch
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := ParsePitch(part)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("empty note list %q", s)
	}
	return res, nil
}
