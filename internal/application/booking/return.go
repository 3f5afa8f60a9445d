package booking

import (
	"context"
	"time"

	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
)

// ReturnUseCase 归还用例
// 状态转换:已取书 → 已归还(终态),并在同一事务中归还馆藏副本
type ReturnUseCase struct {
	bookingRepo booking.Repository
	bookRepo    book.Repository
	txManager   TxManager
	now         func() time.Time
}

// NewReturnUseCase 创建归还用例
func NewReturnUseCase(bookingRepo booking.Repository, bookRepo book.Repository, txManager TxManager) *ReturnUseCase {
	return &ReturnUseCase{
		bookingRepo: bookingRepo,
		bookRepo:    bookRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

// Execute 执行归还
// 失败语义:预订不存在 → ErrBookingNotFound;非已取书状态 → ErrInvalidState
func (uc *ReturnUseCase) Execute(ctx context.Context, bookingID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.LockByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if err := b.MarkReturned(uc.now()); err != nil {
			return err
		}

		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 归还副本(原子UPDATE,上限钳制在total_copies)
		return uc.bookRepo.ReleaseCopy(txCtx, b.BookID)
	})
}
