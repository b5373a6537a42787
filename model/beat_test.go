package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatParsing(t *testing.T) {
	assert := assert.New(t)

	b, err := ParseBeat("4.123")
	assert.NoError(err)
	assert.Equal(uint64(4), b.Whole())
	assert.Equal("4.123", b.String())

	cases := map[string]string{
		"0": "0.0",
		"0.": "0.0",
		"0.0": "0.0",
		"0.000": "0.0",
		" 7.25 ": "7.25",
		"0.99999": "0.99999",
		"0.123456": "0.12346",
		"0.123454": "0.12345",
		"4294967295.5": "4294967295.5",
	}
	for input, expected := range cases {
		b, err := ParseBeat(input)
		assert.NoError(err, "input %q", input)
		assert.Equal(expected, b.String(), "input %q", input)
	}
}

func TestBeatParseErrors(t *testing.T) {
	bad := []string{"", "-0", "0x5", "-1.2", "2.3.4", "2.e5", "a", "4.9a", "1,2", "2.-3"}
	for _, input := range bad {
		_, err := ParseBeat(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestBeatOps(t *testing.T) {
	assert := assert.New(t)

	a, _ := ParseBeat("4.123")
	b, _ := ParseBeat("1.234")
	assert.Equal("5.357", a.Add(b).String())
	assert.Equal("2.889", a.Sub(b).String())

	// carry across the whole-beat boundary
	c, _ := ParseBeat("0.9")
	assert.Equal("5.023", a.Add(c).String())

	// subtraction saturates at zero
	assert.Equal("0.0", b.Sub(a).String())

	assert.True(b.Less(a))
	assert.False(a.Less(b))
}

func TestBeatQuantize(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]string{
		"0.12": "0.0",
		"0.13": "0.25",
		"0.49": "0.5",
		"0.51": "0.5",
	}
	for input, expected := range cases {
		b, _ := ParseBeat(input)
		assert.Equal(expected, b.Quantize(4, 0).String(), "input %q", input)
	}

	// swing shifts the off-beat slot towards the triplet position
	b, _ := ParseBeat("0.25")
	assert.Equal("0.29167", b.Quantize(4, 1.0).String())

	// grid 0 is a no-op
	b, _ = ParseBeat("0.12")
	assert.Equal("0.12", b.Quantize(0, 0).String())
}
