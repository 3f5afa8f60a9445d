package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaolin/libfund/internal/domain/analytics"
)

// fakeRepo 固定统计快照的数据源
type fakeRepo struct {
	stats []analytics.BookStats
	err   error
}

func (f *fakeRepo) CollectBookStats(_ context.Context) ([]analytics.BookStats, error) {
	return f.stats, f.err
}

// TestDemandReport 测试需求报表用例
func TestDemandReport(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-5 * 24 * time.Hour)
	pub := now.AddDate(-2, 0, 0)

	stats := []analytics.BookStats{
		{BookID: 1, Title: "低需求", PickUpCount: 1, CountInFund: 1, PublicationDate: pub, LastBookingAt: &last},
		{BookID: 2, Title: "高需求", PickUpCount: 100, CountInFund: 1, PublicationDate: pub, LastBookingAt: &last},
		{BookID: 3, Title: "中需求", PickUpCount: 10, CountInFund: 1, PublicationDate: pub, LastBookingAt: &last},
	}

	t.Run("报表按需求降序且条数受限", func(t *testing.T) {
		uc := NewDemandReportUseCase(&fakeRepo{stats: stats}, 2)
		uc.now = func() time.Time { return now }

		resp, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, resp.TotalBooks)
		require.Len(t, resp.TopDemand, 2, "报表条数受top_demand_limit限制")
		assert.Equal(t, uint(2), resp.TopDemand[0].BookID)
		assert.Equal(t, uint(3), resp.TopDemand[1].BookID)
		assert.InDelta(t, 100.0, resp.TopDemand[0].Percentile, 1e-9)
		assert.Greater(t, resp.BalanceCoefficient, 0.0)
		assert.Equal(t, "2025-06-01 12:00:00", resp.GeneratedAt)
	})

	t.Run("空馆藏返回空报表和零系数", func(t *testing.T) {
		uc := NewDemandReportUseCase(&fakeRepo{}, 15)
		uc.now = func() time.Time { return now }

		resp, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, resp.TotalBooks)
		assert.Empty(t, resp.TopDemand)
		assert.Equal(t, 0.0, resp.BalanceCoefficient)
	})

	t.Run("条数上限大于馆藏规模时全量返回", func(t *testing.T) {
		uc := NewDemandReportUseCase(&fakeRepo{stats: stats}, 15)
		uc.now = func() time.Time { return now }

		resp, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, resp.TopDemand, 3)
	})

	t.Run("展示值保留两位小数", func(t *testing.T) {
		uc := NewDemandReportUseCase(&fakeRepo{stats: stats}, 15)
		uc.now = func() time.Time { return now }

		resp, err := uc.Execute(ctx)
		require.NoError(t, err)

		for _, e := range resp.TopDemand {
			assert.InDelta(t, e.Demand, float64(int(e.Demand*100+0.5))/100, 1e-9)
		}
	})
}
