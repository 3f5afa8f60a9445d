package analytics

import (
	"context"
	"math"
	"sort"
	"time"
)

// BookStats 单本图书的需求统计快照
// 由Repository从当前已提交数据一次性汇总(图书表 + 预订历史聚合),
// 分析过程只读,不回写任何字段
type BookStats struct {
	BookID          uint
	Title           string
	PickUpCount     int        // 累计取书次数
	CountInFund     int        // 当前可借副本数
	PublicationDate time.Time  // 出版日期(入藏年限据此计算)
	LastBookingAt   *time.Time // 最近一次预订时间,nil表示从未被预订
}

// DemandEntry 需求报表条目
type DemandEntry struct {
	BookID     uint
	Title      string
	Demand     float64 // 需求指数
	Percentile float64 // 百分位(需求<=本书的图书占比×100)
}

// Repository 需求统计数据源接口
// infrastructure层用一条聚合查询实现(books LEFT JOIN bookings按书取MAX(booking_date))
type Repository interface {
	CollectBookStats(ctx context.Context) ([]BookStats, error)
}

// 数值下限:距最近预订天数和入藏年限的最小值,避免除零并给新近预订最大加成
const (
	minDaysSinceLast = 0.1
	minYearsInFund   = 0.1
	daysPerYear      = 365.25
)

// DemandIndex 计算单本图书的需求指数
// 公式:(取书次数 / 有效副本数) × ln(1 + 1/距最近预订天数)
// - 有效副本数 = max(count_in_fund, 1),全部借出时仍可计算
// - 距最近预订天数按整天截断后取下限0.1;从未被预订视为"刚刚",
//   即0天→下限0.1,获得最大新近度加成
func DemandIndex(s BookStats, now time.Time) float64 {
	days := minDaysSinceLast
	if s.LastBookingAt != nil {
		d := float64(wholeDays(now.Sub(*s.LastBookingAt)))
		if d > days {
			days = d
		}
	}
	return ratio(s) * math.Log(1+1/days)
}

// RankByDemand 计算需求报表:按需求指数降序排列并给出百分位
// 设计说明:
// 1. 排序使用书ID作为次级键,并列时顺序确定可复现
// 2. 百分位基于排好序的序列一次遍历得出(O(n log n)),
//    并列需求共享同一百分位:降序序列中首个同值下标i0,
//    percentile = (n - i0) / n × 100
func RankByDemand(stats []BookStats, now time.Time) []DemandEntry {
	n := len(stats)
	if n == 0 {
		return []DemandEntry{}
	}

	entries := make([]DemandEntry, n)
	for i, s := range stats {
		entries[i] = DemandEntry{
			BookID: s.BookID,
			Title:  s.Title,
			Demand: DemandIndex(s, now),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Demand != entries[j].Demand {
			return entries[i].Demand > entries[j].Demand
		}
		return entries[i].BookID < entries[j].BookID
	})

	// 按同值分组赋百分位
	for i0 := 0; i0 < n; {
		i1 := i0
		for i1+1 < n && entries[i1+1].Demand == entries[i0].Demand {
			i1++
		}
		p := float64(n-i0) / float64(n) * 100
		for i := i0; i <= i1; i++ {
			entries[i].Percentile = p
		}
		i0 = i1 + 1
	}

	return entries
}

// BalanceCoefficient 馆藏均衡系数
// 公式:所有图书 (取书次数/有效副本数)/入藏年限 的平均值
// 入藏年限 = 距出版日期整天数/365.25,下限0.1;空馆藏返回0.0
func BalanceCoefficient(stats []BookStats, now time.Time) float64 {
	if len(stats) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, s := range stats {
		years := float64(wholeDays(now.Sub(s.PublicationDate))) / daysPerYear
		if years < minYearsInFund {
			years = minYearsInFund
		}
		sum += ratio(s) / years
	}
	return sum / float64(len(stats))
}

// ratio 取书次数与有效副本数之比
func ratio(s BookStats) float64 {
	copies := s.CountInFund
	if copies <= 0 {
		copies = 1
	}
	return float64(s.PickUpCount) / float64(copies)
}

// wholeDays 按整天截断(与报表口径一致,不足一天不计)
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}
