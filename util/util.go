package util

import (
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

// FormatFloat renders with up to five decimals, trailing zeros trimmed
// but always keeping one digit after the point ("120.0", "0.8",
// "1.23457"). Used everywhere a float reaches serialized text so
// repeated serialize/parse cycles are byte-stable.
func FormatFloat(value float64) string {
	rounded := math.Round(value*100000) / 100000
	s := fmt.Sprintf("%.5f", rounded)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// GatherAllMidiPaths walks path and returns up to maxNum .mid/.midi
// files. maxNum of 0 means no limit.
func GatherAllMidiPaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() {
			if strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi") {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

// StripQuotes removes one matching pair of surrounding double quotes.
// Metadata values are stored verbatim, quotes included; the MIDI
// encoder strips them before emitting text meta events.
func StripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// QuoteIfNeeded wraps values containing whitespace in double quotes,
// the inverse of StripQuotes for MIDI-recovered metadata.
func QuoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t") && !strings.HasPrefix(s, `"`) {
		return `"` + s + `"`
	}
	return s
}
