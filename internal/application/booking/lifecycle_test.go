package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaolin/libfund/internal/domain/booking"
)

// 预订全生命周期的用例编排测试:
// 预订 → 取书 → 归还,以及各状态下的非法操作

func reservedBooking(id uint, chatID int64, bookID uint) *booking.Booking {
	b := booking.NewBooking("BKG-test", chatID, bookID, time.Now(), gracePeriod)
	b.ID = id
	return b
}

// TestPickUp 测试取书
func TestPickUp(t *testing.T) {
	ctx := context.Background()

	t.Run("正常取书", func(t *testing.T) {
		bk := testBook(1, 2)
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		uc := NewPickUpUseCase(bookingRepo, bookRepo, &passthroughTx{})
		require.NoError(t, uc.Execute(ctx, 10))

		stored, _ := bookingRepo.FindByID(ctx, 10)
		assert.Equal(t, booking.StatusPickedUp, stored.Status)
		assert.NotNil(t, stored.PickUpDate)
		assert.Equal(t, 1, bk.PickUpCount, "取书应累加取书计数")
		assert.Equal(t, 2, bk.CountInFund, "取书不应动台账(预订时已扣)")
	})

	t.Run("重复取书被拒绝", func(t *testing.T) {
		bk := testBook(1, 2)
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		uc := NewPickUpUseCase(bookingRepo, bookRepo, &passthroughTx{})
		require.NoError(t, uc.Execute(ctx, 10))

		err := uc.Execute(ctx, 10)
		assert.ErrorIs(t, err, booking.ErrInvalidState)
		assert.Equal(t, 1, bk.PickUpCount, "失败的取书不应累加计数")
	})

	t.Run("预订不存在", func(t *testing.T) {
		uc := NewPickUpUseCase(newFakeBookingRepo(), newFakeBookRepo(), &passthroughTx{})
		err := uc.Execute(ctx, 404)
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})
}

// TestReturn 测试归还
func TestReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("取书后归还", func(t *testing.T) {
		bk := testBook(1, 2)
		bk.CountInFund = 1 // 模拟预订时已扣减
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		pickUpUC := NewPickUpUseCase(bookingRepo, bookRepo, &passthroughTx{})
		returnUC := NewReturnUseCase(bookingRepo, bookRepo, &passthroughTx{})

		require.NoError(t, pickUpUC.Execute(ctx, 10))
		require.NoError(t, returnUC.Execute(ctx, 10))

		stored, _ := bookingRepo.FindByID(ctx, 10)
		assert.Equal(t, booking.StatusReturned, stored.Status)
		assert.NotNil(t, stored.ReturnDate)
		assert.Equal(t, 2, bk.CountInFund, "归还应把副本放回馆藏")
	})

	t.Run("未取书不能归还", func(t *testing.T) {
		bk := testBook(1, 2)
		bk.CountInFund = 1
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		uc := NewReturnUseCase(bookingRepo, bookRepo, &passthroughTx{})
		err := uc.Execute(ctx, 10)

		assert.ErrorIs(t, err, booking.ErrInvalidState)
		assert.Equal(t, 1, bk.CountInFund, "失败的归还不应动台账")
	})

	t.Run("重复归还被拒绝", func(t *testing.T) {
		bk := testBook(1, 2)
		bk.CountInFund = 1
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		pickUpUC := NewPickUpUseCase(bookingRepo, bookRepo, &passthroughTx{})
		returnUC := NewReturnUseCase(bookingRepo, bookRepo, &passthroughTx{})

		require.NoError(t, pickUpUC.Execute(ctx, 10))
		require.NoError(t, returnUC.Execute(ctx, 10))

		err := returnUC.Execute(ctx, 10)
		assert.ErrorIs(t, err, booking.ErrInvalidState)
		assert.Equal(t, 2, bk.CountInFund, "重复归还不应把可借数推高过总数")
	})
}

// TestCancel 测试取消
func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("生效预订可以取消", func(t *testing.T) {
		bk := testBook(1, 2)
		bk.CountInFund = 1
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		uc := NewCancelUseCase(bookingRepo, bookRepo, &passthroughTx{})
		require.NoError(t, uc.Execute(ctx, 10))

		stored, _ := bookingRepo.FindByID(ctx, 10)
		assert.Equal(t, booking.StatusCanceled, stored.Status)
		assert.Equal(t, 2, bk.CountInFund, "取消应归还副本")
	})

	t.Run("已取书的预订不能取消", func(t *testing.T) {
		bk := testBook(1, 2)
		bk.CountInFund = 1
		bookRepo := newFakeBookRepo(bk)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		pickUpUC := NewPickUpUseCase(bookingRepo, bookRepo, &passthroughTx{})
		cancelUC := NewCancelUseCase(bookingRepo, bookRepo, &passthroughTx{})

		require.NoError(t, pickUpUC.Execute(ctx, 10))

		err := cancelUC.Execute(ctx, 10)
		assert.ErrorIs(t, err, booking.ErrInvalidState, "已取书的取消必须显式报错,绝不静默成功")
		assert.Equal(t, 1, bk.CountInFund, "失败的取消不应归还副本")
	})
}

// TestGetActiveBooking 测试生效预订查询
func TestGetActiveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("返回生效预订和书名", func(t *testing.T) {
		bk := testBook(1, 2)
		bookingRepo := newFakeBookingRepo(reservedBooking(10, 100, 1))

		uc := NewGetActiveBookingUseCase(bookingRepo, newFakeBookRepo(bk))
		resp, err := uc.Execute(ctx, 100)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, uint(10), resp.BookingID)
		assert.Equal(t, "三体", resp.BookTitle)
		assert.Equal(t, "已预订", resp.Status)
	})

	t.Run("无生效预订返回nil而非错误", func(t *testing.T) {
		uc := NewGetActiveBookingUseCase(newFakeBookingRepo(), newFakeBookRepo())
		resp, err := uc.Execute(ctx, 100)

		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("终态预订不算生效", func(t *testing.T) {
		b := reservedBooking(10, 100, 1)
		require.NoError(t, b.Cancel(time.Now()))
		uc := NewGetActiveBookingUseCase(newFakeBookingRepo(b), newFakeBookRepo(testBook(1, 2)))

		resp, err := uc.Execute(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})
}
