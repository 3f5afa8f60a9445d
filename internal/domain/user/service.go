package user

import (
	"context"
	"strings"
)

// Service 读者领域服务接口
// 设计说明:注册规则沿用对话层的录入约束
// - 姓名必须由三个词组成(姓 名 父称)
// - 年龄必须大于0
// - 手机号必须为11位数字
type Service interface {
	// Register 注册读者
	Register(ctx context.Context, chatID int64, fullName string, age int, phoneNumber int64) (*User, error)

	// GetByChatID 根据外部会话ID获取读者
	GetByChatID(ctx context.Context, chatID int64) (*User, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建读者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 注册读者
func (s *service) Register(ctx context.Context, chatID int64, fullName string, age int, phoneNumber int64) (*User, error) {
	// 1. 字段校验
	if !isValidFullName(fullName) {
		return nil, ErrInvalidFullName
	}
	if age <= 0 {
		return nil, ErrInvalidAge
	}
	if !isValidPhoneNumber(phoneNumber) {
		return nil, ErrInvalidPhone
	}

	// 2. 检查是否已注册
	existing, err := s.repo.FindByChatID(ctx, chatID)
	if err == nil && existing != nil {
		return nil, ErrUserDuplicate
	}
	if err != nil && err != ErrUserNotFound {
		return nil, err
	}

	// 3. 创建并持久化
	u := NewUser(chatID, strings.TrimSpace(fullName), age, phoneNumber)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// GetByChatID 根据外部会话ID获取读者
func (s *service) GetByChatID(ctx context.Context, chatID int64) (*User, error) {
	return s.repo.FindByChatID(ctx, chatID)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// isValidFullName 姓名必须由三个词组成
func isValidFullName(fullName string) bool {
	return len(strings.Fields(fullName)) == 3
}

// isValidPhoneNumber 手机号必须为11位数字
func isValidPhoneNumber(phone int64) bool {
	return phone >= 10000000000 && phone < 100000000000
}
