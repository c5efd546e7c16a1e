package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUintHex(t *testing.T) {
	assert.Equal(t, "0x00", FormatUintHex(0, 2))
	assert.Equal(t, "0x2a", FormatUintHex(42, 2))
	assert.Equal(t, "0x00c8", FormatUintHex(200, 4))
}

func TestFormatSlice(t *testing.T) {
	assert.Equal(t, "go, rust", FormatSlice([]string{"go", "rust"}, ", "))
	assert.Equal(t, "", FormatSlice([]int{}, ", "))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 3, "a": 1, "b": 2}))
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 }))
}

func TestAccumulate(t *testing.T) {
	assert.Equal(t, 6, Accumulate([]string{"a", "bb", "ccc"}, func(s string) int { return len(s) }))
	assert.Equal(t, 0, Accumulate([]string{}, func(s string) int { return len(s) }))
}

func TestMakeError(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := MakeError(sentinel, "value %v of %v", 1, "two")

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "sentinel: value 1 of two", err.Error())
}
