package model

// Document is a parsed MTXT file: the header version, the global
// metadata map and the beat-ordered record list. A Document only
// exists fully constructed; a failed parse or decode yields none.
type Document struct {
	Version string
	Meta    *Metadata
	Records []Record
}

func NewDocument(version string) *Document {
	return &Document{
		Version: version,
		Meta:    NewMetadata(),
	}
}

// Duration is the maximum beat+duration over all timed records. It is
// recomputed on every call, never cached, so mutation is always
// reflected. ok is false for header-only or metadata-only documents.
func (d *Document) Duration() (dur Beat, ok bool) {
	for _, r := range d.Records {
		if !r.Timed() {
			continue
		}
		if end := End(r); !ok || dur.Less(end) {
			dur = end
			ok = true
		}
	}
	return dur, ok
}

func (d *Document) GetMetadata(key string) (string, bool) {
	return d.Meta.Get(key)
}

func (d *Document) SetMetadata(key, value string) {
	d.Meta.Set(key, value)
}

// Sort restores the beat ordering invariant after records have been
// appended or retimed.
func (d *Document) Sort() {
	SortRecords(d.Records)
}
