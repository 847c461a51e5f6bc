package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaorut/pathkit/trie"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <word-list> <dictionary>",
		Short: "Build a dictionary from a tab-separated word list",
		Long: `The build command reads lines of "key<TAB>description" from the word
list, builds a double array over the keys, and writes the serialized
dictionary. Each key's value is the byte offset of its line in the word
list, so a search can seek straight to the description.

Example:
  dict build stations.tsv stations.dict`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], args[1])
		},
	}
}

func runBuild(wordListPath, dictionaryPath string) error {
	file, err := os.Open(wordListPath)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	var elements []trie.TrieElement[string, uint32]
	offset := uint32(0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		lineLength := uint32(len(line)) + 1
		key, _, found := strings.Cut(line, "\t")
		if !found || key == "" {
			offset += lineLength
			continue
		}
		elements = append(elements, trie.TrieElement[string, uint32]{Key: key, Value: offset})
		offset += lineLength
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}

	added := 0
	observer := &trie.BuildingObserverSet{
		Adding: func([]byte, int32) { added++ },
		Done: func() {
			fmt.Fprintf(os.Stderr, "%d keys laid out\n", added)
		},
	}
	built, err := trie.BuildTrie(elements, trie.NewStringSerializer(), observer, trie.DefaultDensityFactor)
	if err != nil {
		return fmt.Errorf("build dictionary: %w", err)
	}

	output, err := os.Create(dictionaryPath)
	if err != nil {
		return fmt.Errorf("create dictionary: %w", err)
	}
	defer output.Close()

	writer := bufio.NewWriter(output)
	if err := built.Storage().Serialize(writer, offsetValueSerializer()); err != nil {
		return fmt.Errorf("serialize dictionary: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return output.Close()
}

func offsetValueSerializer() *trie.ValueSerializer[uint32] {
	return trie.NewValueSerializer(func(value uint32) []byte {
		return trie.NewIntegerSerializer[uint32](false).Serialize(value)
	}, 4)
}

func offsetValueDeserializer() *trie.ValueDeserializer[uint32] {
	return trie.NewValueDeserializer(func(serialized []byte) (uint32, error) {
		return trie.NewIntegerDeserializer[uint32](false).Deserialize(serialized)
	})
}
