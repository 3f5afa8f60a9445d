package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBook 测试图书创建
func TestNewBook(t *testing.T) {
	pubDate := time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBook("三体", []string{"刘慈欣"}, "7536692935", "9787536692930", "chi",
		302, "重庆出版社", pubDate, 12, 5)

	assert.Equal(t, 5, b.CountInFund)
	assert.Equal(t, 5, b.TotalCopies, "入藏副本数应同时作为总副本数")
	assert.Equal(t, 0.0, b.AverageRating)
	assert.Equal(t, 0, b.RatingsCount)
	assert.Equal(t, 0, b.PickUpCount)
	assert.True(t, b.IsAvailable())
}

// TestIsAvailable 测试可借判定
func TestIsAvailable(t *testing.T) {
	b := &Book{CountInFund: 1}
	assert.True(t, b.IsAvailable())

	b.CountInFund = 0
	assert.False(t, b.IsAvailable())
}

// TestAddRating 测试增量加权均值
// 公式: α = n/(n+1), avg ← α·avg + (1−α)·r
// 等价于全历史评分的算术平均
func TestAddRating(t *testing.T) {
	t.Run("首次评分均值即评分值", func(t *testing.T) {
		b := &Book{}

		require.NoError(t, b.AddRating(4))
		assert.Equal(t, 4.0, b.AverageRating)
		assert.Equal(t, 1, b.RatingsCount)
	})

	t.Run("两次评分等于算术平均", func(t *testing.T) {
		b := &Book{}

		require.NoError(t, b.AddRating(3))
		require.NoError(t, b.AddRating(5))

		assert.InDelta(t, 4.0, b.AverageRating, 1e-9, "(3+5)/2 = 4.0")
		assert.Equal(t, 2, b.RatingsCount)
	})

	t.Run("多次评分仍等于算术平均", func(t *testing.T) {
		b := &Book{}
		ratings := []int{5, 4, 3, 5, 1, 2, 4}

		sum := 0
		for _, r := range ratings {
			require.NoError(t, b.AddRating(r))
			sum += r
		}

		expected := float64(sum) / float64(len(ratings))
		assert.InDelta(t, expected, b.AverageRating, 1e-9)
		assert.Equal(t, len(ratings), b.RatingsCount)
	})

	t.Run("评分超出范围被拒绝且不改状态", func(t *testing.T) {
		b := &Book{}
		require.NoError(t, b.AddRating(4))

		assert.ErrorIs(t, b.AddRating(0), ErrInvalidRating)
		assert.ErrorIs(t, b.AddRating(6), ErrInvalidRating)
		assert.ErrorIs(t, b.AddRating(-1), ErrInvalidRating)

		assert.Equal(t, 4.0, b.AverageRating, "非法评分不应影响均值")
		assert.Equal(t, 1, b.RatingsCount, "非法评分不应增加计数")
	})
}
