package user

import (
	"context"

	"github.com/xiaolin/libfund/internal/domain/user"
)

// RegisterUseCase 读者注册用例
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	ChatID      int64
	FullName    string
	Age         int
	PhoneNumber int64
}

// UserResponse 读者响应DTO
type UserResponse struct {
	ChatID      int64  `json:"chat_id"`
	FullName    string `json:"full_name"`
	Age         int    `json:"age"`
	PhoneNumber int64  `json:"phone_number"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	u, err := uc.userService.Register(ctx, req.ChatID, req.FullName, req.Age, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	return &UserResponse{
		ChatID:      u.ChatID,
		FullName:    u.FullName,
		Age:         u.Age,
		PhoneNumber: u.PhoneNumber,
	}, nil
}

// Get 按会话ID查询读者
func (uc *RegisterUseCase) Get(ctx context.Context, chatID int64) (*UserResponse, error) {
	u, err := uc.userService.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{
		ChatID:      u.ChatID,
		FullName:    u.FullName,
		Age:         u.Age,
		PhoneNumber: u.PhoneNumber,
	}, nil
}
