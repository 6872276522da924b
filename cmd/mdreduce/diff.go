package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oss-mdreduce/mdreduce/internal/reduce"
)

var diffCmd = &cobra.Command{
	Use:   "diff [file]",
	Short: "Print the raw Append/Patch diff sequence as JSON lines",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	r := reduce.New()
	enc := json.NewEncoder(os.Stdout)

	emit := func(diffs []reduce.Diff) {
		for _, d := range diffs {
			_ = enc.Encode(d)
		}
	}

	detach := r.Subscribe(emit)
	defer detach()

	reader := bufio.NewReader(in)
	for {
		ch, _, err := reader.ReadRune()
		if err != nil {
			break
		}
		r.Push(ch)
	}
	r.Close()

	fmt.Fprintf(os.Stderr, "# %d blocks settled\n", len(r.Blocks()))
	return nil
}
