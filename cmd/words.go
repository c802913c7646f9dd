package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SamuelRCrider/xplicit-go/core"
)

var (
	wordsAdd    []string
	wordsRemove []string
	wordsSave   string
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Print the effective word list",
	Long: `Prints the words that would be searched for, with the list's hash. With
--add, --remove and --save a new YAML word list is written, starting from the
effective list.`,
	RunE: runWords,
}

func init() {
	wordsCmd.Flags().StringSliceVar(&wordsAdd, "add", nil, "Words to add")
	wordsCmd.Flags().StringSliceVar(&wordsRemove, "remove", nil, "Words to remove")
	wordsCmd.Flags().StringVar(&wordsSave, "save", "", "Write the resulting list to this YAML file")
}

func runWords(cmd *cobra.Command, args []string) error {
	list, err := cfg.LoadWords()
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}

	if len(wordsAdd) > 0 || len(wordsRemove) > 0 || wordsSave != "" {
		list = core.NewWordListBuilder().
			WithMetadata(list.Metadata.Version, list.Metadata.Description, list.Metadata.Author).
			Add(list.Words...).
			Add(wordsAdd...).
			Remove(wordsRemove...).
			Build()
	}

	out := cmd.OutOrStdout()
	if wordsSave != "" {
		data, err := yaml.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to encode word list: %w", err)
		}
		if err := os.WriteFile(wordsSave, data, 0644); err != nil {
			return fmt.Errorf("failed to save word list: %w", err)
		}
		fmt.Fprintf(out, "Saved %d words to %s\n", len(list.Words), wordsSave)
	}

	for _, w := range list.Words {
		fmt.Fprintln(out, w)
	}
	fmt.Fprintf(out, "%d words, hash %s\n", len(list.Words), list.Hash())
	return nil
}
