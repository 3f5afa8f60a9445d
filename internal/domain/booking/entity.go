package booking

import (
	"time"
)

// Status 预订状态
// 设计说明:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 定义为类型别名,便于添加方法
// 3. RESERVED是初始状态,RETURNED/CANCELED是终态
type Status int

const (
	StatusReserved Status = 1 // 已预订(副本已从馆藏扣除)
	StatusPickedUp Status = 2 // 已取书
	StatusReturned Status = 3 // 已归还(终态)
	StatusCanceled Status = 4 // 已取消(终态)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusReserved:
		return "已预订"
	case StatusPickedUp:
		return "已取书"
	case StatusReturned:
		return "已归还"
	case StatusCanceled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return s == StatusReturned || s == StatusCanceled
}

// transitions 状态转换表(state × event → state | error)
// 集中定义合法转换,状态规则不散落在各调用点:
// - 已预订 → 已取书 / 已取消
// - 已取书 → 已归还
// - 终态无后续转换,任何尝试都返回ErrInvalidState
var transitions = map[Status][]Status{
	StatusReserved: {StatusPickedUp, StatusCanceled},
	StatusPickedUp: {StatusReturned},
	StatusReturned: {},
	StatusCanceled: {},
}

// Booking 预订实体(聚合根)
// 设计说明:
// 1. 预订记录只创建和转换状态,从不删除(保留历史供需求分析)
// 2. BookingDate在创建时设定,之后不可变
// 3. BookingDeadline由BookingDate+宽限期一次性推导,仅作提示,
//    系统不做自动过期清理(人工流程)
// 4. 不直接关联Book对象,只保存BookID(避免跨聚合引用)
type Booking struct {
	ID              uint
	BookingNo       string     // 预订号(业务主键,全局唯一)
	UserChatID      int64      // 读者的外部会话ID
	BookID          uint       // 图书ID
	BookingDate     time.Time  // 预订时间(不可变)
	BookingDeadline time.Time  // 取书截止时间(不可变)
	PickUpDate      *time.Time // 取书时间
	ReturnDate      *time.Time // 归还时间
	Status          Status     // 预订状态
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBooking 创建新预订(工厂方法)
// 初始状态为已预订,截止时间 = 预订时间 + 宽限期
func NewBooking(bookingNo string, userChatID int64, bookID uint, now time.Time, gracePeriod time.Duration) *Booking {
	return &Booking{
		BookingNo:       bookingNo,
		UserChatID:      userChatID,
		BookID:          bookID,
		BookingDate:     now,
		BookingDeadline: now.Add(gracePeriod),
		Status:          StatusReserved,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
func (b *Booking) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[b.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// transitionTo 状态转换
// 先检查转换表,非法转换返回ErrInvalidState且不修改任何字段
func (b *Booking) transitionTo(target Status, now time.Time) error {
	if !b.CanTransitionTo(target) {
		return ErrInvalidState
	}
	b.Status = target
	b.UpdatedAt = now
	return nil
}

// MarkPickedUp 取书(领域行为)
// 仅允许从已预订转换;副本在预订时已从馆藏扣除,此处不动台账
func (b *Booking) MarkPickedUp(now time.Time) error {
	if err := b.transitionTo(StatusPickedUp, now); err != nil {
		return err
	}
	b.PickUpDate = &now
	return nil
}

// MarkReturned 归还(领域行为)
// 仅允许从已取书转换;调用方负责在同一事务中归还馆藏副本
func (b *Booking) MarkReturned(now time.Time) error {
	if err := b.transitionTo(StatusReturned, now); err != nil {
		return err
	}
	b.ReturnDate = &now
	return nil
}

// Cancel 取消预订(领域行为)
// 仅允许从已预订转换;已取书/已归还的预订取消时必须显式报错,
// 绝不静默成功;调用方负责在同一事务中归还馆藏副本
func (b *Booking) Cancel(now time.Time) error {
	return b.transitionTo(StatusCanceled, now)
}

// IsActive 是否为生效中的预订(已预订状态)
// "每位读者同时至多一条已预订"约束据此检查
func (b *Booking) IsActive() bool {
	return b.Status == StatusReserved
}
