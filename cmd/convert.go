package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtxtkit/mtxt/file"
	"github.com/mtxtkit/mtxt/midi"
	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/transform"
)

var (
	transposeFlag int
	offsetFlag    float64
	quantizeFlag  uint32
)

func init() {
	convertCmd.Flags().IntVar(&transposeFlag, "transpose", 0, "transpose by semitones (e.g. -12)")
	convertCmd.Flags().Float64Var(&offsetFlag, "offset", 0, "offset all events by beats (e.g. 1.5, -0.5)")
	convertCmd.Flags().Uint32Var(&quantizeFlag, "quantize", 0, "snap events to a 1/N beat grid")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Converts between .mtxt and .mid",
	Long:  `Converts between .mtxt and .mid, direction inferred from the file extensions.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(args[0], args[1])
	},
}

func convert(inPath, outPath string) error {
	doc, err := loadAny(inPath)
	if err != nil {
		return err
	}

	if err := applyTransforms(doc); err != nil {
		return err
	}

	switch detectFormat(outPath) {
	case "midi":
		if err := midi.WriteFile(doc, outPath); err != nil {
			return err
		}
	case "mtxt":
		if err := file.Save(doc, outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output extension: %s", outPath)
	}

	dur, _ := doc.Duration()
	fmt.Printf("Wrote %v (%v records, %v beats)\n", outPath, len(doc.Records), dur)
	return nil
}

func loadAny(path string) (*model.Document, error) {
	switch detectFormat(path) {
	case "midi":
		return midi.ReadFile(path)
	case "mtxt":
		return file.Load(path)
	default:
		return nil, fmt.Errorf("unsupported input extension: %s", path)
	}
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi", ".smf":
		return "midi"
	case ".mtxt":
		return "mtxt"
	default:
		return ""
	}
}

func applyTransforms(doc *model.Document) error {
	if transposeFlag != 0 {
		records, err := transform.Transpose(doc.Records, transposeFlag)
		if err != nil {
			return err
		}
		doc.Records = records
	}
	if offsetFlag != 0 {
		doc.Records = transform.Offset(doc.Records, offsetFlag)
	}
	if quantizeFlag != 0 {
		doc.Records = transform.Quantize(doc.Records, quantizeFlag, 0)
	}
	doc.Sort()
	return nil
}
