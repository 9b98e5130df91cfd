// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package words

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	in := []string{"pear", "apple", "fig", "banana", "kiwi", "date"}
	got := Sort(in)

	assert.Equal(t, []string{"fig", "date", "kiwi", "pear", "apple", "banana"}, got)
	assert.Equal(t, "pear", in[0], "input must not be modified")
}

func TestGroupBasic(t *testing.T) {
	blocks := Group(Sort([]string{"cat", "cow", "car", "camel", "apple", "ant", "Bear", "bee"}))

	require.Len(t, blocks, 5)
	assert.Equal(t, Block{Letter: 'a', Length: 3, Rows: []string{"Ant"}}, blocks[0])
	assert.Equal(t, Block{Letter: 'a', Length: 5, Rows: []string{"Apple"}}, blocks[1])
	assert.Equal(t, Block{Letter: 'b', Length: 3, Rows: []string{"Bee"}}, blocks[2])
	assert.Equal(t, Block{Letter: 'c', Length: 3, Rows: []string{"Car Cat Cow"}}, blocks[3])
	assert.Equal(t, Block{Letter: 'c', Length: 5, Rows: []string{"Camel"}}, blocks[4])
}

func TestGroupExcludesUppercaseInitial(t *testing.T) {
	blocks := Group([]string{"Apple", "Zebra"})
	assert.Empty(t, blocks)
}

func TestGroupDropsLongWords(t *testing.T) {
	blocks := Group([]string{"elephants", "elephant", "extraordinary"})

	require.Len(t, blocks, 1)
	assert.Equal(t, 8, blocks[0].Length)
	for _, b := range Group([]string{"abcdefghi", "bcdefghijk"}) {
		assert.LessOrEqual(t, b.Length, MaxWordLength)
	}
}

func TestGroupRowLimits(t *testing.T) {
	var list []string
	for i := 0; i < 100; i++ {
		list = append(list, fmt.Sprintf("m%03d", i))
	}

	blocks := Group(list)
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Len(t, b.Rows, MaxRows)
	for _, row := range b.Rows {
		assert.LessOrEqual(t, len(strings.Fields(row)), WordsPerRow)
	}
	assert.Equal(t, "M000 M001 M002 M003 M004 M005", b.Rows[0])
}

func TestGroupPartialLastRow(t *testing.T) {
	blocks := Group([]string{"dab", "dad", "day", "den", "dew", "dig", "dim"})
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"Dab Dad Day Den Dew Dig", "Dim"}, blocks[0].Rows)
	assert.Equal(t, "Dab Dad Day Den Dew Dig<br>Dim", blocks[0].Text())
}

func TestGroupBucketOrderFollowsInput(t *testing.T) {
	blocks := Group([]string{"hello", "hat", "house", "him"})
	require.Len(t, blocks, 2)
	assert.Equal(t, 5, blocks[0].Length)
	assert.Equal(t, []string{"Hello House"}, blocks[0].Rows)
	assert.Equal(t, 3, blocks[1].Length)
}

func TestFormat(t *testing.T) {
	out := Format([]Block{
		{Letter: 'a', Length: 3, Rows: []string{"Ant Arm", "Axe"}},
		{Letter: 'z', Length: 4, Rows: []string{"Zoom"}},
	})
	assert.Equal(t, "a/3: Ant Arm<br>Axe\nz/4: Zoom\n", out)
	assert.Empty(t, Format(nil))
}
