package writer

import (
	"fmt"
	"strings"

	"github.com/mtxtkit/mtxt/constants"
	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/util"
)

// Serialize renders the canonical MTXT text for a document: header
// line, global metadata in insertion order, then records in stored
// beat order. The same document always yields identical bytes.
func Serialize(doc *model.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "mtxt %s\n", doc.Version)

	for _, key := range doc.Meta.Keys() {
		value, _ := doc.Meta.Get(key)
		fmt.Fprintf(&b, "meta global %s %s\n", key, value)
	}

	for _, r := range doc.Records {
		b.WriteString(formatRecord(r))
		b.WriteByte('\n')
	}

	return b.String()
}

func formatRecord(r model.Record) string {
	switch rec := r.(type) {
	case *model.Tempo:
		return fmt.Sprintf("%s tempo %s", rec.Beat, util.FormatFloat(rec.BPM))

	case *model.TimeSig:
		return fmt.Sprintf("%s timesig %d/%d", rec.Beat, rec.Numerator, rec.Denominator)

	case *model.Note:
		s := fmt.Sprintf("%s note %s", rec.Beat, rec.Pitch)
		// dur= and vel= only when they differ from the parser defaults,
		// so defaulted notes round-trip to the same minimal line
		if !rec.Duration.IsZero() {
			s += " dur=" + rec.Duration.String()
		}
		if rec.Velocity != constants.DefaultVelocity {
			s += " vel=" + util.FormatFloat(rec.Velocity)
		}
		return s

	case *model.Meta:
		return fmt.Sprintf("%s meta %s %s %s", rec.Beat, rec.Scope, rec.Key, rec.Value)

	case *model.Alias:
		names := make([]string, len(rec.Pitches))
		for i, p := range rec.Pitches {
			names[i] = p.String()
		}
		return fmt.Sprintf("alias %s %s", rec.Name, strings.Join(names, ","))

	default:
		panic(fmt.Sprintf("unhandled record kind %T", r))
	}
}
