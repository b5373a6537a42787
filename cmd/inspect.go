package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects an .mtxt or .mid file",
	Long:  `Inspects an .mtxt or .mid file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	doc, err := loadAny(path)
	if err != nil {
		return err
	}

	fmt.Printf("version: %v\n", doc.Version)
	fmt.Printf("records: %v\n", len(doc.Records))
	if dur, ok := doc.Duration(); ok {
		fmt.Printf("duration: %v beats\n", dur)
	} else {
		fmt.Println("duration: none")
	}
	for _, key := range doc.Meta.Keys() {
		val, _ := doc.Meta.Get(key)
		fmt.Printf("meta %v: %v\n", key, val)
	}
	return nil
}
