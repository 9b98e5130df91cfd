// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tpadmin/internal/lessons"
	"github.com/pdiddy/tpadmin/internal/words"
)

const defaultWordsPath = "./data/words.txt"

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Print the word list grouped by first letter and length.",
	Long: `words reads the word list, drops words of two characters or fewer, and
prints, for each letter a-z, rows of up to six capitalized words per word
length. Lengths above eight and rows beyond twelve are not shown. Nothing is
written to the store.`,
	Args: cobra.NoArgs,
	RunE: action(runWords),
}

func init() {
	wordsCmd.Flags().StringP("filePath", "f", defaultWordsPath, "word list file path")

	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, env runEnv) error {
	filePath, _ := cmd.Flags().GetString("filePath")
	return printWords(filePath, env)
}

func printWords(path string, env runEnv) error {
	env.out.Info("Reading words from %s", path)
	list, err := lessons.ParseWords(path)
	if err != nil {
		return err
	}

	blocks := words.Group(words.Sort(list))
	if len(blocks) > 0 {
		env.out.Plain("%s", strings.TrimSuffix(words.Format(blocks), "\n"))
	}
	env.out.Success("%d words in %d groups.", len(list), len(blocks))
	return nil
}
