// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lessons reads the line-oriented lesson and word list files.
//
// A lesson file is a sequence of header lines and content lines:
//
//	#1|Home row
//	asdf jkl;
//	fdsa ;lkj
//	#3|Sentences
//	The quick brown fox.
//
// A header starts with '#' and carries "category|title". Every following
// non-blank line is one lesson in that category until the next header.
package lessons

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/tpadmin/pkg/types"
)

const (
	headerMarker   = "#"
	fieldDelimiter = "|"

	// maxLineBytes bounds a single line; long paragraphs are legitimate content.
	maxLineBytes = 1 << 20
)

// ParseError reports a structural problem in a lesson file.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// parseState is the accumulator threaded through the lines of one file.
type parseState struct {
	category   string
	title      string
	seenHeader bool
	nextID     int
	lessons    []types.Lesson
}

// ParseLessons reads the lesson file at path. The file is streamed line by
// line; ids start at 0 on every call.
func ParseLessons(path string) ([]types.Lesson, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lesson file: %w", err)
	}
	defer f.Close()

	return ParseLessonLines(f, path)
}

// ParseLessonLines parses lessons from r. name is used in error messages.
func ParseLessonLines(r io.Reader, name string) ([]types.Lesson, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	state := parseState{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		next, err := step(state, scanner.Text())
		if err != nil {
			err.File = name
			err.Line = lineNo
			return nil, err
		}
		state = next
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if state.lessons == nil {
		return []types.Lesson{}, nil
	}
	return state.lessons, nil
}

// step folds one line into the state.
func step(state parseState, line string) (parseState, *ParseError) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return state, nil
	}

	if strings.HasPrefix(line, headerMarker) {
		category, title, err := parseHeader(line)
		if err != nil {
			return state, err
		}
		state.category = category
		state.title = title
		state.seenHeader = true
		return state, nil
	}

	if !state.seenHeader {
		return state, &ParseError{Reason: "content before header"}
	}

	state.lessons = append(state.lessons, types.Lesson{
		ID:          state.nextID,
		Type:        types.LessonTypeDefault,
		Category:    state.category,
		Title:       state.title,
		Content:     trimmed,
		BonusPoints: BonusPoints(state.category, trimmed),
	})
	state.nextID++
	return state, nil
}

// parseHeader splits "#category|title". Fields past the second are ignored.
func parseHeader(line string) (string, string, *ParseError) {
	parts := strings.Split(strings.TrimPrefix(line, headerMarker), fieldDelimiter)
	if len(parts) < 2 {
		return "", "", &ParseError{Reason: fmt.Sprintf("header missing %q delimiter", fieldDelimiter)}
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// BonusPoints returns the fixed bonus for categories starting with "1" or
// "2" and the character count of content otherwise.
func BonusPoints(category, content string) int {
	if strings.HasPrefix(category, "1") || strings.HasPrefix(category, "2") {
		return types.FixedBonusPoints
	}
	return utf8.RuneCountInString(strings.TrimSpace(content))
}
