package booking

import (
	"context"
	"time"

	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
)

// CancelUseCase 取消预订用例
// 状态转换:已预订 → 已取消(终态),并在同一事务中归还馆藏副本
// 已取书/已归还的预订不允许取消,显式返回ErrInvalidState,绝不静默成功
type CancelUseCase struct {
	bookingRepo booking.Repository
	bookRepo    book.Repository
	txManager   TxManager
	now         func() time.Time
}

// NewCancelUseCase 创建取消用例
func NewCancelUseCase(bookingRepo booking.Repository, bookRepo book.Repository, txManager TxManager) *CancelUseCase {
	return &CancelUseCase{
		bookingRepo: bookingRepo,
		bookRepo:    bookRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

// Execute 执行取消
// 失败语义:预订不存在 → ErrBookingNotFound;非已预订状态 → ErrInvalidState
func (uc *CancelUseCase) Execute(ctx context.Context, bookingID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.LockByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if err := b.Cancel(uc.now()); err != nil {
			return err
		}

		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 取消释放副本,取消后读者可立即重新预订
		return uc.bookRepo.ReleaseCopy(txCtx, b.BookID)
	})
}
