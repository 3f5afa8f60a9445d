// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// 1. HTTP请求指标：请求总数、耗时分布、并发数
// 2. 预订业务指标：按操作（reserve/pickup/return/cancel）和结果
//    （success/unavailable/already_reserved/invalid_state/error）统计
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 预订业务指标

	// BookingOperationsTotal 预订操作总数（Counter）
	// 标签：operation（reserve/pickup/return/cancel）、result
	BookingOperationsTotal *prometheus.CounterVec

	// RatingsAddedTotal 评分提交总数（Counter）
	RatingsAddedTotal prometheus.Counter

	// DemandReportDuration 需求报表计算耗时（Histogram）
	DemandReportDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，将指标注册到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BookingOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "预订操作总数",
		},
		[]string{"operation", "result"},
	)

	RatingsAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_added_total",
			Help: "评分提交总数",
		},
	)

	DemandReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "demand_report_duration_seconds",
			Help:    "需求报表计算耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
}

// ObserveBookingOperation 记录一次预订操作结果
// operation: reserve/pickup/return/cancel
// result: success/unavailable/already_reserved/invalid_state/not_found/error
func ObserveBookingOperation(operation, result string) {
	if BookingOperationsTotal != nil {
		BookingOperationsTotal.WithLabelValues(operation, result).Inc()
	}
}
