// Command dict builds a double array dictionary from a tab-separated word
// list and answers exact and prefix queries against it.
//
// The build stores each entry's byte offset into the source file as a fixed
// four-byte value, so searches memory-map the dictionary and decode values
// in place without loading the trie.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "dict",
		Short: "Build and search double array dictionaries",
	}
	root.AddCommand(newBuildCmd(), newSearchCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
