// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package appconfig

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tpadmin/internal/docstore"
	"github.com/pdiddy/tpadmin/pkg/types"
)

type staticCount struct {
	n   int
	ok  bool
	err error
}

func (c staticCount) Read() (int, bool, error) { return c.n, c.ok, c.err }

func TestParseLessonIDs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   []int
		errMsg string
	}{
		{name: "list", input: "1,2,3", want: []int{1, 2, 3}},
		{name: "spaces", input: " 4 , 5,6 ", want: []int{4, 5, 6}},
		{name: "single", input: "42", want: []int{42}},
		{name: "empty", input: "", want: []int{}},
		{name: "blank", input: "   ", want: []int{}},
		{name: "negative", input: "-1", want: []int{-1}},
		{name: "word", input: "1,two", errMsg: `invalid newLessonIds "two"`},
		{name: "trailing comma", input: "1,", errMsg: `invalid newLessonIds ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLessonIDs(tt.input)
			if tt.errMsg != "" {
				require.Error(t, err)
				var cerr *ConfigError
				require.True(t, errors.As(err, &cerr))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildExplicitValues(t *testing.T) {
	doc, err := Build(Options{DownloadAll: true, TotalLessonCount: 50, NewLessonIDs: "1,2,3"}, staticCount{n: 9, ok: true})
	require.NoError(t, err)
	assert.Equal(t, types.ConfigDocument{DownloadAll: true, TotalLessonCount: 50, NewLessonIDs: []int{1, 2, 3}}, doc)
}

func TestBuildDefaultsToUploadedCount(t *testing.T) {
	doc, err := Build(Options{TotalLessonCount: -1}, staticCount{n: 120, ok: true})
	require.NoError(t, err)
	assert.Equal(t, 120, doc.TotalLessonCount)
	assert.False(t, doc.DownloadAll)
	assert.Equal(t, []int{}, doc.NewLessonIDs)
}

func TestBuildZeroIsExplicit(t *testing.T) {
	doc, err := Build(Options{TotalLessonCount: 0}, staticCount{err: errors.New("must not be read")})
	require.NoError(t, err)
	assert.Equal(t, 0, doc.TotalLessonCount)
}

func TestBuildMissingCount(t *testing.T) {
	_, err := Build(Options{TotalLessonCount: -1}, staticCount{})
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "totalLessonCount", cerr.Field)
}

func TestBuildRejectsOtherNegativeTotals(t *testing.T) {
	_, err := Build(Options{TotalLessonCount: -5}, staticCount{n: 120, ok: true})
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "totalLessonCount", cerr.Field)
	assert.Equal(t, "-5", cerr.Value)
}

func TestParseTotalLessonCount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		errMsg string
	}{
		{name: "explicit", input: "50", want: 50},
		{name: "zero", input: "0", want: 0},
		{name: "sentinel", input: "-1", want: UseUploadedCount},
		{name: "blank", input: " ", want: UseUploadedCount},
		{name: "padded", input: " 7 ", want: 7},
		{name: "word", input: "lots", errMsg: `invalid totalLessonCount "lots"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTotalLessonCount(tt.input)
			if tt.errMsg != "" {
				var cerr *ConfigError
				require.True(t, errors.As(err, &cerr))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildCountReadError(t *testing.T) {
	_, err := Build(Options{TotalLessonCount: -1}, staticCount{err: errors.New("corrupt file")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt file")
}

func TestWrite(t *testing.T) {
	ctx := context.Background()
	store, err := docstore.OpenSQLite(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	want := types.ConfigDocument{DownloadAll: true, TotalLessonCount: 50, NewLessonIDs: []int{1, 2, 3}}
	require.NoError(t, Write(ctx, store, want))

	var got types.ConfigDocument
	require.NoError(t, store.Get(ctx, Collection, DocumentID, &got))
	assert.Equal(t, want, got)
}
