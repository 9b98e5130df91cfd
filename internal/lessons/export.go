// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lessons

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tpadmin/pkg/types"
)

// Export writes lessons to path. The format follows the extension: .json
// writes indented JSON, anything else writes YAML.
func Export(path string, lessons []types.Lesson) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(lessons, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		data, err = yaml.Marshal(lessons)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Summary counts lessons per category in first-seen order.
type Summary struct {
	Total      int
	Categories []CategoryCount
}

// CategoryCount is the number of lessons under one category/title header.
type CategoryCount struct {
	Category string
	Title    string
	Count    int
}

// Summarize groups consecutive lessons by their header.
func Summarize(lessons []types.Lesson) Summary {
	s := Summary{Total: len(lessons)}
	for _, l := range lessons {
		n := len(s.Categories)
		if n > 0 && s.Categories[n-1].Category == l.Category && s.Categories[n-1].Title == l.Title {
			s.Categories[n-1].Count++
			continue
		}
		s.Categories = append(s.Categories, CategoryCount{Category: l.Category, Title: l.Title, Count: 1})
	}
	return s
}
