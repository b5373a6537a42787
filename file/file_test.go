package file

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/parser"
)

func TestSaveLoad(t *testing.T) {
	assert := assert.New(t)

	doc, err := parser.Parse("mtxt 1.0\nmeta global title \"My Song\"\n0 note C4 dur=1\n")
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "song.mtxt")
	assert.NoError(Save(doc, path))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(doc, loaded)
}

func TestLoadMissing(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.mtxt"))
	assert.Error(err)

	// file problems are not parse problems
	var perr *model.ParseError
	assert.False(errors.As(err, &perr))
}
