package user

import (
	"context"
)

// Repository 读者仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建读者
	Create(ctx context.Context, u *User) error

	// FindByChatID 根据外部会话ID查找读者
	FindByChatID(ctx context.Context, chatID int64) (*User, error)

	// LockByChatID 悲观锁查询读者(SELECT FOR UPDATE)
	// 预订创建时锁定读者行,将"检查生效预订→写入新预订"按读者串行化,
	// 防止同一读者并发请求同时通过"一人一订"检查
	LockByChatID(ctx context.Context, chatID int64) (*User, error)

	// Update 更新读者资料(管理端编辑)
	Update(ctx context.Context, u *User) error
}
