package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mtxtkit/mtxt/constants"
	"github.com/mtxtkit/mtxt/db"
	"github.com/mtxtkit/mtxt/file"
	"github.com/mtxtkit/mtxt/midi"
	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/util"
)

// metadataBatchSize matches what db.GetTrackMetadatas accepts per call.
const metadataBatchSize = 10

// ConvertAll walks the media dir and converts up to maxNum MIDI files
// into .mtxt files under the output dir, enriching each document with
// whatever the metadata table knows about it. Unreadable or corrupt
// files are skipped with a printed reason, not fatal.
func ConvertAll(maxNum int) int {
	mediaDir := constants.GetMediaDir()
	outDir := constants.GetOutputDir()
	os.MkdirAll(outDir, 0777)

	paths := util.GatherAllMidiPaths(mediaDir, maxNum)
	metadatas := fetchMetadatas(paths)

	converted := 0
	for i, path := range paths {
		fmt.Printf("Processing %v of %v midi files\n", i+1, len(paths))
		if convertOne(path, outDir, metadatas) {
			converted++
		}
	}
	return converted
}

func fetchMetadatas(paths []string) map[string]db.TrackMetadata {
	res := make(map[string]db.TrackMetadata)
	if os.Getenv("METADATA_DB_ENDPOINT") == "" {
		// no metadata table configured, convert without enrichment
		return res
	}
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	for start := 0; start < len(names); start += metadataBatchSize {
		end := util.Min(start+metadataBatchSize, len(names))
		for k, v := range db.GetTrackMetadatas(names[start:end]) {
			res[k] = v
		}
	}
	return res
}

func convertOne(path, outDir string, metadatas map[string]db.TrackMetadata) bool {
	doc, err := midi.ReadFile(path)
	if err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return false
	}

	applyMetadata(doc, metadatas[filepath.Base(path)])

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, name+".mtxt")
	if err := file.Save(doc, outPath); err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return false
	}
	return true
}

// applyMetadata fills in table metadata without clobbering anything
// the MIDI file itself carried.
func applyMetadata(doc *model.Document, m db.TrackMetadata) {
	if m.Title != "" {
		if _, ok := doc.GetMetadata("title"); !ok {
			doc.SetMetadata("title", util.QuoteIfNeeded(m.Title))
		}
	}
	if m.Artist != "" {
		if _, ok := doc.GetMetadata("artist"); !ok {
			doc.SetMetadata("artist", util.QuoteIfNeeded(m.Artist))
		}
	}
	if m.Year != 0 {
		if _, ok := doc.GetMetadata("year"); !ok {
			doc.SetMetadata("year", strconv.FormatUint(uint64(m.Year), 10))
		}
	}
}
