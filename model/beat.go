package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	beatFracBits  = 32
	beatFracCount = uint64(1) << beatFracBits
	beatFracMask  = beatFracCount - 1
)

// Beat is a position (or span) on the beat axis. It is stored as
// fixed-point with 32 fractional bits so that parse -> format -> parse
// always reproduces the same value, independent of float printing.
type Beat struct {
	units uint64
}

func BeatFromParts(whole uint32, frac float64) Beat {
	if frac < 0 {
		frac = 0
	}
	if frac >= 1.0 {
		// carry into the whole part
		return BeatFromParts(whole+1, 0)
	}
	fracUnits := uint64(frac * float64(beatFracCount))
	return Beat{units: uint64(whole)<<beatFracBits | fracUnits}
}

func BeatFromFloat(v float64) Beat {
	if v <= 0 {
		return Beat{}
	}
	whole := uint32(v)
	return BeatFromParts(whole, v-float64(whole))
}

func ParseBeat(s string) (Beat, error) {
	s = strings.TrimSpace(s)

	wholeStr, fracStr, hasFrac := strings.Cut(s, ".")
	if !hasFrac {
		fracStr = "0"
	}
	if fracStr == "" {
		fracStr = "0"
	}

	whole, err := strconv.ParseUint(wholeStr, 10, 32)
	if err != nil {
		return Beat{}, fmt.Errorf("invalid beat value %q", s)
	}
	for _, c := range fracStr {
		if c < '0' || c > '9' {
			return Beat{}, fmt.Errorf("invalid beat value %q", s)
		}
	}
	frac, err := strconv.ParseFloat("0."+fracStr, 64)
	if err != nil {
		return Beat{}, fmt.Errorf("invalid beat value %q", s)
	}

	return BeatFromParts(uint32(whole), frac), nil
}

func (b Beat) Whole() uint64 {
	return b.units >> beatFracBits
}

func (b Beat) frac() float64 {
	return float64(b.units&beatFracMask) / float64(beatFracCount)
}

func (b Beat) Float64() float64 {
	return float64(b.Whole()) + b.frac()
}

func (b Beat) IsZero() bool {
	return b.units == 0
}

func (b Beat) Add(other Beat) Beat {
	return Beat{units: b.units + other.units}
}

// Sub saturates at zero rather than wrapping.
func (b Beat) Sub(other Beat) Beat {
	if other.units > b.units {
		return Beat{}
	}
	return Beat{units: b.units - other.units}
}

func (b Beat) Less(other Beat) bool {
	return b.units < other.units
}

func (b Beat) Equal(other Beat) bool {
	return b.units == other.units
}

// Quantize snaps the beat to the nearest 1/grid fraction. Swing in
// (0.0, 1.0] shifts every odd grid slot towards the triplet-feel
// position (1/6 of the grid spacing at swing=1.0).
func (b Beat) Quantize(grid uint32, swing float64) Beat {
	if grid == 0 {
		return b
	}

	gridSize := float64(beatFracCount) / float64(grid)
	total := float64(b.units)

	slot := int64(total/gridSize + 0.5)
	quantized := float64(slot) * gridSize
	if swing != 0 && slot%2 != 0 {
		quantized += (gridSize / 6.0) * swing
	}

	return Beat{units: uint64(quantized + 0.5)}
}

// String formats with up to five fractional digits, trailing zeros
// trimmed but always with at least one digit after the point, e.g.
// "0.0", "7.25", "4.12346".
func (b Beat) String() string {
	whole := b.Whole()
	fracVal := uint64(b.frac()*100000 + 0.5)
	if fracVal >= 100000 {
		whole++
		fracVal = 0
	}

	frac := fmt.Sprintf("%05d", fracVal)
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}
	return fmt.Sprintf("%d.%s", whole, frac)
}
