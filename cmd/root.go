package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mtxt",
	Short: "MTXT converter",
	Long:  `Converts between the MTXT musical text format and standard MIDI files.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
