package file

import (
	"os"

	"github.com/pkg/errors"

	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/parser"
	"github.com/mtxtkit/mtxt/writer"
)

// Load reads and parses an .mtxt file. A filesystem failure comes back
// as a wrapped I/O error; bad content comes back as *model.ParseError.
func Load(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return parser.Parse(string(data))
}

// Save writes the canonical serialization of doc.
func Save(doc *model.Document, path string) error {
	content := writer.Serialize(doc)
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	return nil
}
