package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(25, 0))
}

func TestShowing(t *testing.T) {
	assert.Equal(t, Range{From: 11, To: 20, Total: 25}, Showing(2, 10, 25))
	assert.Equal(t, Range{From: 21, To: 25, Total: 25}, Showing(3, 10, 25), "last page clamps To at the total")
	assert.Equal(t, Range{From: 1, To: 10, Total: 25}, Showing(1, 10, 25))
	assert.Equal(t, Range{From: 1, To: 7, Total: 7}, Showing(1, 10, 7))
}

func TestShowing_PastTheEnd(t *testing.T) {
	assert.Equal(t, Range{Total: 25}, Showing(4, 10, 25))
	assert.Equal(t, Range{Total: 0}, Showing(1, 10, 0))
}

func TestShowing_ClampsPageToOne(t *testing.T) {
	assert.Equal(t, Range{From: 1, To: 10, Total: 25}, Showing(0, 10, 25))
}

func TestPageNumbers(t *testing.T) {
	assert.Equal(t, []int{1}, PageNumbers(1, 1))
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(2, 3))
	assert.Equal(t, []int{1, 2, Ellipsis, 10}, PageNumbers(1, 10))
	assert.Equal(t, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}, PageNumbers(5, 10))
	assert.Equal(t, []int{1, Ellipsis, 9, 10}, PageNumbers(10, 10))
	assert.Nil(t, PageNumbers(1, 0))
}
