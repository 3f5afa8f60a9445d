package booking

import (
	"context"
	"time"

	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
	"github.com/xiaolin/libfund/internal/domain/user"
)

// ReserveUseCase 预订图书用例
// 这是整个引擎最核心的用例,涉及:事务处理、并发控制、业务规则校验
//
// 核心问题:副本超订
// 场景:某书馆藏只剩1本,两个读者同时预订
// 错误实现:先查库存再判断再扣减(三步之间无互斥,两个请求都能通过检查)
// 正确实现:
//  1. SELECT FOR UPDATE 锁定读者行(串行化"一人一订"检查)
//  2. 检查读者最近一条预订是否仍在已预订状态
//  3. 带守卫的原子UPDATE扣减馆藏(count_in_fund>0才生效)
//  4. 写入预订记录
//  5. COMMIT(任何一步失败整体回滚,台账与预订要么同时生效要么都不生效)
type ReserveUseCase struct {
	bookingRepo booking.Repository
	bookRepo    book.Repository
	userRepo    user.Repository
	txManager   TxManager
	gracePeriod time.Duration    // 取书宽限期(参考部署为3天)
	now         func() time.Time // 可注入时钟,便于测试
}

// NewReserveUseCase 创建预订用例
func NewReserveUseCase(
	bookingRepo booking.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	txManager TxManager,
	gracePeriod time.Duration,
) *ReserveUseCase {
	return &ReserveUseCase{
		bookingRepo: bookingRepo,
		bookRepo:    bookRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		gracePeriod: gracePeriod,
		now:         time.Now,
	}
}

// ReserveRequest 预订请求DTO
type ReserveRequest struct {
	UserChatID int64 // 读者的外部会话ID
	BookID     uint  // 图书ID
}

// ReserveResponse 预订响应DTO
type ReserveResponse struct {
	BookingID       uint   `json:"booking_id"`
	BookingNo       string `json:"booking_no"`
	BookID          uint   `json:"book_id"`
	Status          string `json:"status"`
	BookingDate     string `json:"booking_date"`
	BookingDeadline string `json:"booking_deadline"`
}

// Execute 执行预订
// 失败语义:
// - 读者不存在 → ErrUserNotFound
// - 读者已有生效预订 → ErrAlreadyReserved(不创建任何记录)
// - 图书不存在 → ErrBookNotFound
// - 无可借副本 → ErrUnavailable(台账不变,不创建任何记录)
func (uc *ReserveUseCase) Execute(ctx context.Context, req ReserveRequest) (*ReserveResponse, error) {
	var result *booking.Booking
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定读者行
		// 同一读者的并发预订请求在此排队,防止同时通过"一人一订"检查
		if _, err := uc.userRepo.LockByChatID(txCtx, req.UserChatID); err != nil {
			return err
		}

		// 2. 检查最近一条预订:仍在已预订状态则拒绝
		// 只有终态(已归还/已取消)或已取书的读者可以再次预订
		latest, err := uc.bookingRepo.FindLatestByUserChatID(txCtx, req.UserChatID)
		if err != nil && err != booking.ErrBookingNotFound {
			return err
		}
		if latest != nil && latest.IsActive() {
			return booking.ErrAlreadyReserved
		}

		// 3. 扣减馆藏(原子UPDATE,count_in_fund>0才生效)
		// 剩1本时的两个并发预订在此恰好一成一败
		if err := uc.bookRepo.ReserveCopy(txCtx, req.BookID); err != nil {
			return err
		}

		// 4. 写入预订记录(截止时间 = 预订时间 + 宽限期)
		now := uc.now()
		b := booking.NewBooking(booking.GenerateBookingNo(), req.UserChatID, req.BookID, now, uc.gracePeriod)
		if err := uc.bookingRepo.Create(txCtx, b); err != nil {
			return err
		}

		result = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &ReserveResponse{
		BookingID:       result.ID,
		BookingNo:       result.BookingNo,
		BookID:          result.BookID,
		Status:          result.Status.String(),
		BookingDate:     formatDateTime(result.BookingDate),
		BookingDeadline: formatDateTime(result.BookingDeadline),
	}, nil
}

// formatDateTime 统一的时间显示格式
func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
