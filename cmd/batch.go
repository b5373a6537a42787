package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mtxtkit/mtxt/batch"
)

func init() {
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch [maxNum]",
	Short: "Batch-converts MEDIA_PATH midi files to .mtxt",
	Long:  `Batch-converts MEDIA_PATH midi files to .mtxt`,
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		n := batch.ConvertAll(maxNum)
		fmt.Printf("Converted %v files\n", n)
	},
}
