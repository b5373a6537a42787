package transform

import "github.com/mtxtkit/mtxt/model"

// Transpose shifts every note and alias pitch by semitones, returning
// a new record list. Fails when any pitch would leave the 0-127 MIDI
// range.
func Transpose(records []model.Record, semitones int) ([]model.Record, error) {
	if semitones == 0 {
		return append([]model.Record(nil), records...), nil
	}

	res := make([]model.Record, 0, len(records))
	for _, r := range records {
		switch rec := r.(type) {
		case *model.Note:
			pitch, err := rec.Pitch.Transpose(semitones)
			if err != nil {
				return nil, err
			}
			n := *rec
			n.Pitch = pitch
			res = append(res, &n)

		case *model.Alias:
			pitches := make([]model.Pitch, len(rec.Pitches))
			for i, p := range rec.Pitches {
				pitch, err := p.Transpose(semitones)
				if err != nil {
					return nil, err
				}
				pitches[i] = pitch
			}
			res = append(res, &model.Alias{Name: rec.Name, Pitches: pitches})

		default:
			res = append(res, r)
		}
	}
	return res, nil
}

// Offset moves all timed records by the given number of beats. A
// negative offset drops records that would land before beat zero.
func Offset(records []model.Record, beats float64) []model.Record {
	if beats == 0 {
		return append([]model.Record(nil), records...)
	}

	shift := model.BeatFromFloat(beats)
	if beats < 0 {
		shift = model.BeatFromFloat(-beats)
	}
	negative := beats < 0

	var res []model.Record
	for _, r := range records {
		if !r.Timed() {
			res = append(res, r)
			continue
		}
		at := r.At()
		if negative {
			if at.Less(shift) {
				continue
			}
			res = append(res, retime(r, at.Sub(shift)))
		} else {
			res = append(res, retime(r, at.Add(shift)))
		}
	}
	return res
}

// Quantize snaps every timed record to the nearest 1/grid beat, with
// optional swing on the off-beat grid slots. Unlike the other
// transforms it does not restore beat ordering; callers re-sort.
func Quantize(records []model.Record, grid uint32, swing float64) []model.Record {
	if grid == 0 {
		return append([]model.Record(nil), records...)
	}

	res := make([]model.Record, 0, len(records))
	for _, r := range records {
		if !r.Timed() {
			res = append(res, r)
			continue
		}
		res = append(res, retime(r, r.At().Quantize(grid, swing)))
	}
	return res
}

func retime(r model.Record, at model.Beat) model.Record {
	switch rec := r.(type) {
	case *model.Tempo:
		n := *rec
		n.Beat = at
		return &n
	case *model.TimeSig:
		n := *rec
		n.Beat = at
		return &n
	case *model.Note:
		n := *rec
		n.Beat = at
		return &n
	case *model.Meta:
		n := *rec
		n.Beat = at
		return &n
	default:
		return r
	}
}
