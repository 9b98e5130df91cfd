// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package appconfig builds and publishes the configuration document clients
// read to decide whether to download lessons.
package appconfig

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/tpadmin/internal/docstore"
	"github.com/pdiddy/tpadmin/pkg/types"
)

const (
	// Collection and DocumentID locate the single config document.
	Collection = "configs"
	DocumentID = "configs_id"

	// UseUploadedCount as TotalLessonCount selects the last uploaded count.
	UseUploadedCount = -1
)

// ConfigError reports malformed numeric input for the config document.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseLessonIDs parses a comma-separated list of lesson ids. Whitespace
// around ids is ignored and empty input yields an empty list.
func ParseLessonIDs(s string) ([]int, error) {
	ids := []int{}
	if strings.TrimSpace(s) == "" {
		return ids, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ConfigError{Field: "newLessonIds", Value: part, Reason: "not an integer", Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseTotalLessonCount parses the --totalLessonCount value. Blank input is
// UseUploadedCount.
func ParseTotalLessonCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UseUploadedCount, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ConfigError{Field: "totalLessonCount", Value: s, Reason: "not an integer", Err: err}
	}
	return n, nil
}

// CountReader supplies the lesson count recorded by the last upload.
type CountReader interface {
	Read() (int, bool, error)
}

// Options are the inputs of updateConfig.
type Options struct {
	DownloadAll bool

	// TotalLessonCount is UseUploadedCount or an explicit non-negative total.
	TotalLessonCount int

	// NewLessonIDs is the raw comma-separated flag value.
	NewLessonIDs string
}

// Build assembles the config document, consulting counts only when no
// explicit total was given.
func Build(opts Options, counts CountReader) (types.ConfigDocument, error) {
	ids, err := ParseLessonIDs(opts.NewLessonIDs)
	if err != nil {
		return types.ConfigDocument{}, err
	}

	total := opts.TotalLessonCount
	switch {
	case total == UseUploadedCount:
		n, ok, err := counts.Read()
		if err != nil {
			return types.ConfigDocument{}, fmt.Errorf("reading uploaded lesson count: %w", err)
		}
		if !ok {
			return types.ConfigDocument{}, &ConfigError{
				Field:  "totalLessonCount",
				Value:  strconv.Itoa(total),
				Reason: "no lessons uploaded yet; pass --totalLessonCount",
			}
		}
		total = n
	case total < 0:
		return types.ConfigDocument{}, &ConfigError{
			Field:  "totalLessonCount",
			Value:  strconv.Itoa(total),
			Reason: "must not be negative",
		}
	}

	return types.ConfigDocument{
		DownloadAll:      opts.DownloadAll,
		TotalLessonCount: total,
		NewLessonIDs:     ids,
	}, nil
}

// Write replaces the config document.
func Write(ctx context.Context, store docstore.Store, doc types.ConfigDocument) error {
	if err := store.Set(ctx, Collection, DocumentID, doc); err != nil {
		return fmt.Errorf("writing config document: %w", err)
	}
	return nil
}
