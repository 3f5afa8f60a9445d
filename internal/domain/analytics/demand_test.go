package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// TestDemandIndex 测试需求指数公式
// (取书次数 / 有效副本数) × ln(1 + 1/距最近预订天数)
func TestDemandIndex(t *testing.T) {
	t.Run("常规情形", func(t *testing.T) {
		last := testNow.Add(-10 * 24 * time.Hour)
		s := BookStats{PickUpCount: 20, CountInFund: 4, LastBookingAt: &last}

		expected := (20.0 / 4.0) * math.Log(1+1.0/10.0)
		assert.InDelta(t, expected, DemandIndex(s, testNow), 1e-9)
	})

	t.Run("从未被预订视为刚刚预订", func(t *testing.T) {
		s := BookStats{PickUpCount: 10, CountInFund: 2, LastBookingAt: nil}

		// 天数取下限0.1,获得最大新近度加成
		expected := (10.0 / 2.0) * math.Log(1+1.0/0.1)
		assert.InDelta(t, expected, DemandIndex(s, testNow), 1e-9)
	})

	t.Run("不足一天按下限计算", func(t *testing.T) {
		last := testNow.Add(-6 * time.Hour) // 整天截断为0
		s := BookStats{PickUpCount: 1, CountInFund: 1, LastBookingAt: &last}

		expected := 1.0 * math.Log(1+1.0/0.1)
		assert.InDelta(t, expected, DemandIndex(s, testNow), 1e-9)
	})

	t.Run("全部借出时有效副本数取1", func(t *testing.T) {
		last := testNow.Add(-24 * time.Hour)
		s := BookStats{PickUpCount: 7, CountInFund: 0, LastBookingAt: &last}

		expected := 7.0 * math.Log(2.0)
		assert.InDelta(t, expected, DemandIndex(s, testNow), 1e-9)
	})
}

// TestRankByDemand 测试需求排名与百分位
func TestRankByDemand(t *testing.T) {
	t.Run("空馆藏返回空报表", func(t *testing.T) {
		entries := RankByDemand(nil, testNow)
		assert.Empty(t, entries)
	})

	t.Run("按需求降序排列", func(t *testing.T) {
		last := testNow.Add(-5 * 24 * time.Hour)
		stats := []BookStats{
			{BookID: 1, Title: "低", PickUpCount: 1, CountInFund: 1, LastBookingAt: &last},
			{BookID: 2, Title: "高", PickUpCount: 100, CountInFund: 1, LastBookingAt: &last},
			{BookID: 3, Title: "中", PickUpCount: 10, CountInFund: 1, LastBookingAt: &last},
		}

		entries := RankByDemand(stats, testNow)
		require.Len(t, entries, 3)
		assert.Equal(t, uint(2), entries[0].BookID)
		assert.Equal(t, uint(3), entries[1].BookID)
		assert.Equal(t, uint(1), entries[2].BookID)

		// 百分位: 第一名(n-0)/n=100, 第二名(n-1)/n≈66.67, 第三名(n-2)/n≈33.33
		assert.InDelta(t, 100.0, entries[0].Percentile, 1e-9)
		assert.InDelta(t, 200.0/3.0, entries[1].Percentile, 1e-9)
		assert.InDelta(t, 100.0/3.0, entries[2].Percentile, 1e-9)
	})

	t.Run("并列需求共享同一百分位", func(t *testing.T) {
		last := testNow.Add(-2 * 24 * time.Hour)
		// 两本书统计量完全相同 → 需求相同
		stats := []BookStats{
			{BookID: 1, PickUpCount: 5, CountInFund: 1, LastBookingAt: &last},
			{BookID: 2, PickUpCount: 5, CountInFund: 1, LastBookingAt: &last},
			{BookID: 3, PickUpCount: 50, CountInFund: 1, LastBookingAt: &last},
			{BookID: 4, PickUpCount: 1, CountInFund: 1, LastBookingAt: &last},
		}

		entries := RankByDemand(stats, testNow)
		require.Len(t, entries, 4)

		// 排名: 3 > (1, 2并列) > 4;并列组按书ID升序
		assert.Equal(t, uint(3), entries[0].BookID)
		assert.Equal(t, uint(1), entries[1].BookID)
		assert.Equal(t, uint(2), entries[2].BookID)
		assert.Equal(t, uint(4), entries[3].BookID)

		// 并列组共享首个下标的百分位: (4-1)/4×100 = 75
		assert.InDelta(t, 100.0, entries[0].Percentile, 1e-9)
		assert.InDelta(t, 75.0, entries[1].Percentile, 1e-9)
		assert.InDelta(t, 75.0, entries[2].Percentile, 1e-9)
		assert.InDelta(t, 25.0, entries[3].Percentile, 1e-9)
	})
}

// TestBalanceCoefficient 测试馆藏均衡系数
func TestBalanceCoefficient(t *testing.T) {
	t.Run("空馆藏返回0", func(t *testing.T) {
		assert.Equal(t, 0.0, BalanceCoefficient(nil, testNow))
		assert.Equal(t, 0.0, BalanceCoefficient([]BookStats{}, testNow))
	})

	t.Run("单本图书", func(t *testing.T) {
		pub := testNow.AddDate(0, 0, -730) // 整730天前
		stats := []BookStats{
			{PickUpCount: 8, CountInFund: 2, PublicationDate: pub},
		}

		years := 730.0 / 365.25
		assert.InDelta(t, (8.0/2.0)/years, BalanceCoefficient(stats, testNow), 1e-9)
	})

	t.Run("新书入藏年限取下限", func(t *testing.T) {
		pub := testNow.Add(-12 * time.Hour) // 整天截断为0 → 年限取0.1
		stats := []BookStats{
			{PickUpCount: 3, CountInFund: 1, PublicationDate: pub},
		}

		assert.InDelta(t, 3.0/0.1, BalanceCoefficient(stats, testNow), 1e-9)
	})

	t.Run("多本图书取平均", func(t *testing.T) {
		pub := testNow.AddDate(0, 0, -365)
		stats := []BookStats{
			{PickUpCount: 4, CountInFund: 2, PublicationDate: pub},
			{PickUpCount: 6, CountInFund: 1, PublicationDate: pub},
		}

		years := 365.0 / 365.25
		expected := ((4.0/2.0)/years + (6.0/1.0)/years) / 2
		assert.InDelta(t, expected, BalanceCoefficient(stats, testNow), 1e-9)
	})
}
