// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package words turns a word list into the alphabetized, length-bucketed
// rows shown on the practice screen. It only produces text.
package words

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxWordLength is the longest bucket that is emitted; longer words are dropped.
	MaxWordLength = 8

	// WordsPerRow is the chunk size of a bucket.
	WordsPerRow = 6

	// MaxRows caps the rows emitted per bucket.
	MaxRows = 12

	// LineBreak joins rows inside a block.
	LineBreak = "<br>"
)

// Block is the display text for one letter and one word length.
type Block struct {
	Letter byte
	Length int
	Rows   []string
}

// Text returns the rows joined by LineBreak.
func (b Block) Text() string {
	return strings.Join(b.Rows, LineBreak)
}

// Sort returns a copy of words ordered lexicographically and then, stably,
// by length.
func Sort(words []string) []string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) < utf8.RuneCountInString(sorted[j])
	})
	return sorted
}

// Group builds the blocks for letters a through z. Only words starting with
// the lowercase letter are considered, so capitalized words never appear.
func Group(words []string) []Block {
	var blocks []Block
	for letter := byte('a'); letter <= 'z'; letter++ {
		for _, bucket := range bucketsFor(words, letter) {
			if bucket.length > MaxWordLength {
				continue
			}
			blocks = append(blocks, Block{
				Letter: letter,
				Length: bucket.length,
				Rows:   rows(bucket.words),
			})
		}
	}
	return blocks
}

type bucket struct {
	length int
	words  []string
}

// bucketsFor groups the words starting with letter by length, keeping the
// order in which each length first appears.
func bucketsFor(words []string, letter byte) []bucket {
	var buckets []bucket
	index := map[int]int{}
	for _, w := range words {
		if w == "" || w[0] != letter {
			continue
		}
		n := utf8.RuneCountInString(w)
		i, ok := index[n]
		if !ok {
			i = len(buckets)
			index[n] = i
			buckets = append(buckets, bucket{length: n})
		}
		buckets[i].words = append(buckets[i].words, w)
	}
	return buckets
}

func rows(words []string) []string {
	var out []string
	for start := 0; start < len(words) && len(out) < MaxRows; start += WordsPerRow {
		end := start + WordsPerRow
		if end > len(words) {
			end = len(words)
		}
		chunk := make([]string, 0, end-start)
		for _, w := range words[start:end] {
			chunk = append(chunk, capitalize(w))
		}
		out = append(out, strings.Join(chunk, " "))
	}
	return out
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// Format renders blocks one per line as "letter/length: rows".
func Format(blocks []Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		fmt.Fprintf(&b, "%c/%d: %s\n", blk.Letter, blk.Length, blk.Text())
	}
	return b.String()
}
