package handler

import (
	"github.com/gin-gonic/gin"

	appanalytics "github.com/xiaolin/libfund/internal/application/analytics"
	"github.com/xiaolin/libfund/pkg/response"
)

// AnalyticsHandler 需求报表HTTP处理器
type AnalyticsHandler struct {
	demandReportUseCase *appanalytics.DemandReportUseCase
}

// NewAnalyticsHandler 创建报表处理器
func NewAnalyticsHandler(demandReportUseCase *appanalytics.DemandReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{demandReportUseCase: demandReportUseCase}
}

// DemandReport 需求报表
// @Summary      馆藏需求报表
// @Description  返回高需求图书排名（需求指数+百分位）和馆藏均衡系数（需要管理员权限）
// @Tags         报表模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=analytics.DemandReportResponse} "查询成功"
// @Router       /admin/reports/demand [get]
func (h *AnalyticsHandler) DemandReport(c *gin.Context) {
	result, err := h.demandReportUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
