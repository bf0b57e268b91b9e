package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationInfo(t *testing.T) {
	t.Run("defaults applied for out-of-range inputs", func(t *testing.T) {
		info := NewPaginationInfo(42, 0, 0)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, DefaultPageSize, info.PageSize)
		assert.Equal(t, 3, info.TotalPages)
	})

	t.Run("page clamped to last page", func(t *testing.T) {
		info := NewPaginationInfo(10, 99, 10)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("empty list still reports one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 20)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, int64(0), info.TotalItems)
	})
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(1, 10, 25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = CalculateSliceIndices(3, 10, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// past the end yields an empty window, not a panic
	start, end = CalculateSliceIndices(4, 10, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}
