package booking

import (
	"context"
)

// Repository 预订仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
// 3. 预订记录从不删除,只新增和更新状态
type Repository interface {
	// Create 创建预订记录(必须与台账扣减在同一事务中)
	Create(ctx context.Context, b *Booking) error

	// FindByID 根据ID查找预订
	FindByID(ctx context.Context, id uint) (*Booking, error)

	// LockByID 悲观锁查询预订(SELECT FOR UPDATE)
	// 状态转换前锁定预订行,并发的取书/取消/归还按预订串行化
	LockByID(ctx context.Context, id uint) (*Booking, error)

	// Update 更新预订(状态和时间字段)
	Update(ctx context.Context, b *Booking) error

	// FindLatestByUserChatID 查找读者最近一条预订
	// 按创建顺序取最新(ID最大即最近,同时也是booking_date最新),
	// "一人一订"规则据此判定;无记录时返回ErrBookingNotFound
	FindLatestByUserChatID(ctx context.Context, userChatID int64) (*Booking, error)

	// FindActiveByUserChatID 查找读者生效中的预订(已预订状态,最新一条)
	// 无生效预订时返回ErrBookingNotFound
	FindActiveByUserChatID(ctx context.Context, userChatID int64) (*Booking, error)

	// ListByUserChatID 分页查询读者的预订历史
	ListByUserChatID(ctx context.Context, userChatID int64, page, pageSize int) ([]*Booking, int64, error)
}
