package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiaolin/libfund/internal/domain/analytics"
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// analyticsRepository 需求统计数据源实现(MySQL)
// 一条聚合查询取出全部快照:
// books LEFT JOIN bookings,按书取MAX(booking_date);
// 从未被预订的书last_booking_at为NULL
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建需求统计仓储
func NewAnalyticsRepository(db *gorm.DB) analytics.Repository {
	return &analyticsRepository{db: db}
}

// bookStatsRow 聚合查询的扫描行
type bookStatsRow struct {
	BookID          uint
	Title           string
	PickUpCount     int
	CountInFund     int
	PublicationDate time.Time
	LastBookingAt   *time.Time
}

// CollectBookStats 汇总全馆图书的需求统计快照
func (r *analyticsRepository) CollectBookStats(ctx context.Context) ([]analytics.BookStats, error) {
	var rows []bookStatsRow
	err := r.getDB(ctx).Model(&BookModel{}).
		Select("books.id AS book_id, books.title, books.pick_up_count, books.count_in_fund, " +
			"books.publication_date, MAX(bk.booking_date) AS last_booking_at").
		Joins("LEFT JOIN bookings bk ON bk.book_id = books.id").
		Group("books.id, books.title, books.pick_up_count, books.count_in_fund, books.publication_date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "汇总需求统计失败")
	}

	stats := make([]analytics.BookStats, len(rows))
	for i, row := range rows {
		stats[i] = analytics.BookStats{
			BookID:          row.BookID,
			Title:           row.Title,
			PickUpCount:     row.PickUpCount,
			CountInFund:     row.CountInFund,
			PublicationDate: row.PublicationDate,
			LastBookingAt:   row.LastBookingAt,
		}
	}

	return stats, nil
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *analyticsRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
