// Command mdreduce is a small demo CLI around the reduce package: it feeds
// a file (or stdin) through a Reducer and prints the resulting blocks to
// the terminal, either as a live partial render or as a final diff dump.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdreduce",
	Short: "Stream Markdown through the block reducer",
	Long: `mdreduce feeds Markdown text through the reduce package's streaming
block parser and shows what an external view would see.

Examples:
  mdreduce render notes.md
  cat notes.md | mdreduce render
  mdreduce diff notes.md
  mdreduce config`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
