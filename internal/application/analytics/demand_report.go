package analytics

import (
	"context"
	"math"
	"time"

	"github.com/xiaolin/libfund/internal/domain/analytics"
	"github.com/xiaolin/libfund/pkg/metrics"
)

// DemandReportUseCase 需求报表用例
// 汇总全馆图书的需求指数、百分位排名与馆藏平衡系数,供管理员决策采购
type DemandReportUseCase struct {
	repo analytics.Repository
	topN int
	now  func() time.Time
}

// NewDemandReportUseCase 创建报表用例
// topN 控制报表返回的高需求图书条数
func NewDemandReportUseCase(repo analytics.Repository, topN int) *DemandReportUseCase {
	return &DemandReportUseCase{
		repo: repo,
		topN: topN,
		now:  time.Now,
	}
}

// DemandEntryDTO 报表条目
type DemandEntryDTO struct {
	BookID     uint    `json:"book_id"`
	Title      string  `json:"title"`
	Demand     float64 `json:"demand"`
	Percentile float64 `json:"percentile"`
}

// DemandReportResponse 报表响应
type DemandReportResponse struct {
	GeneratedAt        string           `json:"generated_at"`
	TotalBooks         int              `json:"total_books"`
	BalanceCoefficient float64          `json:"balance_coefficient"`
	TopDemand          []DemandEntryDTO `json:"top_demand"`
}

// Execute 生成需求报表
// 报表是只读全表聚合,不开事务;排名和系数在内存中计算
func (uc *DemandReportUseCase) Execute(ctx context.Context) (*DemandReportResponse, error) {
	start := time.Now()
	defer func() {
		if metrics.DemandReportDuration != nil {
			metrics.DemandReportDuration.Observe(time.Since(start).Seconds())
		}
	}()

	stats, err := uc.repo.CollectBookStats(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	ranked := analytics.RankByDemand(stats, now)
	balance := analytics.BalanceCoefficient(stats, now)

	limit := uc.topN
	if limit > len(ranked) {
		limit = len(ranked)
	}

	entries := make([]DemandEntryDTO, 0, limit)
	for _, e := range ranked[:limit] {
		entries = append(entries, DemandEntryDTO{
			BookID:     e.BookID,
			Title:      e.Title,
			Demand:     round2(e.Demand),
			Percentile: round2(e.Percentile),
		})
	}

	return &DemandReportResponse{
		GeneratedAt:        now.Format("2006-01-02 15:04:05"),
		TotalBooks:         len(stats),
		BalanceCoefficient: round2(balance),
		TopDemand:          entries,
	}, nil
}

// round2 展示层保留两位小数,排序在舍入之前完成
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
