package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiaolin/libfund/internal/application/user"
	"github.com/xiaolin/libfund/internal/interface/http/dto"
	"github.com/xiaolin/libfund/pkg/response"
)

// UserHandler 读者HTTP处理器
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
}

// NewUserHandler 创建读者处理器
func NewUserHandler(registerUseCase *appuser.RegisterUseCase) *UserHandler {
	return &UserHandler{registerUseCase: registerUseCase}
}

// Register 读者注册
// @Summary      读者注册
// @Description  注册读者。姓名必须由三个词组成，年龄大于0，手机号为11位数字
// @Tags         读者模块
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterReaderRequest true "读者信息"
// @Success      200 {object} response.Response{data=dto.ReaderResponse} "注册成功"
// @Failure      200 {object} response.Response "40009 已注册 / 40900 字段校验失败"
// @Router       /readers [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		ChatID:      req.ChatID,
		FullName:    req.FullName,
		Age:         req.Age,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ReaderResponse{
		ChatID:      result.ChatID,
		FullName:    result.FullName,
		Age:         result.Age,
		PhoneNumber: result.PhoneNumber,
	})
}

// GetReader 查询读者
// @Summary      查询读者
// @Description  按外部会话ID查询读者信息
// @Tags         读者模块
// @Produce      json
// @Param        chat_id path int true "读者外部会话ID"
// @Success      200 {object} response.Response{data=dto.ReaderResponse} "查询成功"
// @Failure      200 {object} response.Response "40401 读者不存在"
// @Router       /readers/{chat_id} [get]
func (h *UserHandler) GetReader(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会话ID")
		return
	}

	result, err := h.registerUseCase.Get(c.Request.Context(), chatID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ReaderResponse{
		ChatID:      result.ChatID,
		FullName:    result.FullName,
		Age:         result.Age,
		PhoneNumber: result.PhoneNumber,
	})
}
