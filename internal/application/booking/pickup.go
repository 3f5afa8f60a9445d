package booking

import (
	"context"
	"time"

	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
)

// PickUpUseCase 取书用例
// 状态转换:已预订 → 已取书
// 副本在预订时已从馆藏扣除,取书不动台账,只累加图书的取书计数
type PickUpUseCase struct {
	bookingRepo booking.Repository
	bookRepo    book.Repository
	txManager   TxManager
	now         func() time.Time
}

// NewPickUpUseCase 创建取书用例
func NewPickUpUseCase(bookingRepo booking.Repository, bookRepo book.Repository, txManager TxManager) *PickUpUseCase {
	return &PickUpUseCase{
		bookingRepo: bookingRepo,
		bookRepo:    bookRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

// Execute 执行取书
// 失败语义:预订不存在 → ErrBookingNotFound;非已预订状态 → ErrInvalidState
func (uc *PickUpUseCase) Execute(ctx context.Context, bookingID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定预订行(并发的取书/取消在此排队)
		b, err := uc.bookingRepo.LockByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		// 2. 状态机转换(转换表集中校验,非法转换不改任何字段)
		if err := b.MarkPickedUp(uc.now()); err != nil {
			return err
		}

		// 3. 持久化状态,并累加取书计数(原子UPDATE)
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}
		return uc.bookRepo.IncrPickUpCount(txCtx, b.BookID)
	})
}
