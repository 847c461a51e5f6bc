package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaorut/pathkit/internal/mmfile"
	"github.com/kaorut/pathkit/trie"
)

var prefixLimit int

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <dictionary> <word-list>",
		Short: "Query a dictionary interactively",
		Long: `The search command memory-maps a dictionary built by "dict build" and
answers queries from stdin. An exact hit prints the matching word list
line; otherwise the keys extending the query are listed as suggestions.

Example:
  dict search stations.dict stations.tsv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args[0], args[1])
		},
	}
	cmd.Flags().IntVar(&prefixLimit, "suggestions", 8, "How many prefix suggestions to list")
	return cmd
}

func runSearch(dictionaryPath, wordListPath string) error {
	wordList, err := os.ReadFile(wordListPath)
	if err != nil {
		return fmt.Errorf("read word list: %w", err)
	}

	region, cleanup, err := mmfile.Map(dictionaryPath)
	if err != nil {
		return fmt.Errorf("map dictionary: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	storage, err := trie.NewMmapStorage(region, 0, len(region), offsetValueDeserializer())
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	dictionary := trie.NewTrieWithStorage[string, uint32](storage, trie.NewStringSerializer())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			break
		}
		if err := answer(dictionary, wordList, query); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}

func answer(dictionary *trie.Trie[string, uint32], wordList []byte, query string) error {
	offset, err := dictionary.Find(query)
	if err != nil {
		return err
	}
	if offset != nil {
		fmt.Println(lineAt(wordList, *offset))
		return nil
	}

	subtrie, found, err := dictionary.Subtrie(query)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("not found")
		return nil
	}
	fmt.Println("not found, did you mean:")
	iterator := subtrie.Iterator()
	for i := 0; i < prefixLimit; i++ {
		offset, ok := iterator.Next()
		if !ok {
			break
		}
		fmt.Printf("  %s\n", lineAt(wordList, *offset))
	}
	return iterator.Err()
}

func lineAt(wordList []byte, offset uint32) string {
	if int(offset) >= len(wordList) {
		return ""
	}
	line := wordList[offset:]
	if end := bytes.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}
	return string(line)
}
