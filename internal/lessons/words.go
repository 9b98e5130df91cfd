// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lessons

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// minWordLength is the shortest word kept from a word list.
const minWordLength = 3

// ParseWords reads one word per line from path.
func ParseWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	return ReadWords(f)
}

// ReadWords returns the trimmed lines of r that are longer than two
// characters, in input order.
func ReadWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	words := []string{}
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if utf8.RuneCountInString(w) < minWordLength {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return words, nil
}
