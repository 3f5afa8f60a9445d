package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	appbooking "github.com/xiaolin/libfund/internal/application/booking"
	"github.com/xiaolin/libfund/internal/interface/http/dto"
	apperrors "github.com/xiaolin/libfund/pkg/errors"
	"github.com/xiaolin/libfund/pkg/metrics"
	"github.com/xiaolin/libfund/pkg/response"
)

// BookingHandler 预订HTTP处理器
type BookingHandler struct {
	reserveUseCase *appbooking.ReserveUseCase
	pickUpUseCase  *appbooking.PickUpUseCase
	returnUseCase  *appbooking.ReturnUseCase
	cancelUseCase  *appbooking.CancelUseCase
	activeUseCase  *appbooking.GetActiveBookingUseCase
}

// NewBookingHandler 创建预订处理器
func NewBookingHandler(
	reserveUseCase *appbooking.ReserveUseCase,
	pickUpUseCase *appbooking.PickUpUseCase,
	returnUseCase *appbooking.ReturnUseCase,
	cancelUseCase *appbooking.CancelUseCase,
	activeUseCase *appbooking.GetActiveBookingUseCase,
) *BookingHandler {
	return &BookingHandler{
		reserveUseCase: reserveUseCase,
		pickUpUseCase:  pickUpUseCase,
		returnUseCase:  returnUseCase,
		cancelUseCase:  cancelUseCase,
		activeUseCase:  activeUseCase,
	}
}

// Reserve 预订图书
// @Summary      预订图书
// @Description  读者预订一本图书。一人同时只能有一条生效预订；副本在预订时从馆藏扣除，剩最后一本时并发预订恰好一成一败
// @Tags         预订模块
// @Accept       json
// @Produce      json
// @Param        request body dto.ReserveRequest true "预订信息"
// @Success      200 {object} response.Response{data=dto.ReserveResponse} "预订成功"
// @Failure      200 {object} response.Response "40001 无可借副本 / 40002 已有生效预订 / 40401 读者不存在 / 40402 图书不存在"
// @Router       /bookings [post]
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req dto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.reserveUseCase.Execute(c.Request.Context(), appbooking.ReserveRequest{
		UserChatID: req.ChatID,
		BookID:     req.BookID,
	})
	metrics.ObserveBookingOperation("reserve", resultLabel(err))

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ReserveResponse{
		BookingID:       result.BookingID,
		BookingNo:       result.BookingNo,
		BookID:          result.BookID,
		Status:          result.Status,
		BookingDate:     result.BookingDate,
		BookingDeadline: result.BookingDeadline,
	})
}

// PickUp 取书
// @Summary      取书
// @Description  读者到馆取书，预订从"已预订"转换为"已取书"，并累加图书取书计数
// @Tags         预订模块
// @Produce      json
// @Param        id path int true "预订ID"
// @Success      200 {object} response.Response "取书成功"
// @Failure      200 {object} response.Response "40003 状态不允许 / 40403 预订不存在"
// @Router       /bookings/{id}/pickup [post]
func (h *BookingHandler) PickUp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.pickUpUseCase.Execute(c.Request.Context(), id)
	metrics.ObserveBookingOperation("pickup", resultLabel(err))

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Return 归还
// @Summary      归还图书
// @Description  读者归还图书，预订从"已取书"转换为"已归还"（终态），副本回到馆藏
// @Tags         预订模块
// @Produce      json
// @Param        id path int true "预订ID"
// @Success      200 {object} response.Response "归还成功"
// @Failure      200 {object} response.Response "40003 状态不允许 / 40403 预订不存在"
// @Router       /bookings/{id}/return [post]
func (h *BookingHandler) Return(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.returnUseCase.Execute(c.Request.Context(), id)
	metrics.ObserveBookingOperation("return", resultLabel(err))

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Cancel 取消预订
// @Summary      取消预订
// @Description  取消生效中的预订（终态），副本回到馆藏；已取书的预订不允许取消
// @Tags         预订模块
// @Produce      json
// @Param        id path int true "预订ID"
// @Success      200 {object} response.Response "取消成功"
// @Failure      200 {object} response.Response "40003 状态不允许 / 40403 预订不存在"
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.cancelUseCase.Execute(c.Request.Context(), id)
	metrics.ObserveBookingOperation("cancel", resultLabel(err))

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetActive 查询读者生效中的预订
// @Summary      查询生效预订
// @Description  返回读者当前生效（已预订状态）的预订，没有则data为null
// @Tags         预订模块
// @Produce      json
// @Param        chat_id path int true "读者外部会话ID"
// @Success      200 {object} response.Response{data=dto.ActiveBookingResponse} "查询成功"
// @Router       /readers/{chat_id}/booking [get]
func (h *BookingHandler) GetActive(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会话ID")
		return
	}

	result, err := h.activeUseCase.Execute(c.Request.Context(), chatID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result == nil {
		// 无生效预订不是错误,data为null
		response.Success(c, nil)
		return
	}

	response.Success(c, &dto.ActiveBookingResponse{
		BookingID:       result.BookingID,
		BookingNo:       result.BookingNo,
		BookID:          result.BookID,
		BookTitle:       result.BookTitle,
		Status:          result.Status,
		BookingDate:     result.BookingDate,
		BookingDeadline: result.BookingDeadline,
	})
}

// =========================================
// 辅助函数
// =========================================

// parseIDParam 解析路径中的预订ID,失败时已写响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "无效的预订ID")
		return 0, false
	}
	return uint(id), true
}

// resultLabel 预订操作结果 → 指标标签
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return "error"
	}
	switch appErr.Code {
	case apperrors.ErrCodeUnavailable:
		return "unavailable"
	case apperrors.ErrCodeAlreadyReserved:
		return "already_reserved"
	case apperrors.ErrCodeInvalidState:
		return "invalid_state"
	case apperrors.ErrCodeUserNotFound, apperrors.ErrCodeBookNotFound, apperrors.ErrCodeBookingNotFound:
		return "not_found"
	default:
		return "error"
	}
}
