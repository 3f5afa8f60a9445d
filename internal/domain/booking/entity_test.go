package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatusString 测试状态的中文展示
func TestStatusString(t *testing.T) {
	assert.Equal(t, "已预订", StatusReserved.String())
	assert.Equal(t, "已取书", StatusPickedUp.String())
	assert.Equal(t, "已归还", StatusReturned.String())
	assert.Equal(t, "已取消", StatusCanceled.String())
	assert.Equal(t, "未知状态", Status(99).String())
}

// TestStatusIsTerminal 测试终态判定
func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusReserved.IsTerminal())
	assert.False(t, StatusPickedUp.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}

// TestNewBooking 测试预订创建
func TestNewBooking(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	b := NewBooking("BKG1735000000123456", 100500, 7, now, 72*time.Hour)

	assert.Equal(t, StatusReserved, b.Status, "初始状态应为已预订")
	assert.Equal(t, now, b.BookingDate)
	assert.Equal(t, now.Add(72*time.Hour), b.BookingDeadline, "截止时间 = 预订时间 + 宽限期")
	assert.Nil(t, b.PickUpDate)
	assert.Nil(t, b.ReturnDate)
	assert.True(t, b.IsActive())
}

// TestBookingTransitions 测试状态机的全部合法与非法转换
func TestBookingTransitions(t *testing.T) {
	now := time.Now()

	t.Run("已预订可以取书", func(t *testing.T) {
		b := NewBooking("BKG1", 1, 1, now, time.Hour)
		pickUpAt := now.Add(time.Hour)

		err := b.MarkPickedUp(pickUpAt)
		require.NoError(t, err)
		assert.Equal(t, StatusPickedUp, b.Status)
		require.NotNil(t, b.PickUpDate)
		assert.Equal(t, pickUpAt, *b.PickUpDate)
		assert.False(t, b.IsActive(), "取书后不再是生效预订")
	})

	t.Run("已预订可以取消", func(t *testing.T) {
		b := NewBooking("BKG2", 1, 1, now, time.Hour)

		err := b.Cancel(now)
		require.NoError(t, err)
		assert.Equal(t, StatusCanceled, b.Status)
	})

	t.Run("已取书可以归还", func(t *testing.T) {
		b := NewBooking("BKG3", 1, 1, now, time.Hour)
		require.NoError(t, b.MarkPickedUp(now))

		returnAt := now.Add(24 * time.Hour)
		err := b.MarkReturned(returnAt)
		require.NoError(t, err)
		assert.Equal(t, StatusReturned, b.Status)
		require.NotNil(t, b.ReturnDate)
		assert.Equal(t, returnAt, *b.ReturnDate)
	})

	t.Run("已预订不能直接归还", func(t *testing.T) {
		b := NewBooking("BKG4", 1, 1, now, time.Hour)

		err := b.MarkReturned(now)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, StatusReserved, b.Status, "非法转换不应修改状态")
		assert.Nil(t, b.ReturnDate, "非法转换不应写入时间")
	})

	t.Run("已取书不能取消", func(t *testing.T) {
		b := NewBooking("BKG5", 1, 1, now, time.Hour)
		require.NoError(t, b.MarkPickedUp(now))

		err := b.Cancel(now)
		assert.ErrorIs(t, err, ErrInvalidState, "取消已取书的预订必须显式报错")
		assert.Equal(t, StatusPickedUp, b.Status)
	})

	t.Run("终态没有后续转换", func(t *testing.T) {
		returned := NewBooking("BKG6", 1, 1, now, time.Hour)
		require.NoError(t, returned.MarkPickedUp(now))
		require.NoError(t, returned.MarkReturned(now))

		assert.ErrorIs(t, returned.MarkPickedUp(now), ErrInvalidState)
		assert.ErrorIs(t, returned.Cancel(now), ErrInvalidState)
		assert.ErrorIs(t, returned.MarkReturned(now), ErrInvalidState)

		canceled := NewBooking("BKG7", 1, 1, now, time.Hour)
		require.NoError(t, canceled.Cancel(now))

		assert.ErrorIs(t, canceled.MarkPickedUp(now), ErrInvalidState)
		assert.ErrorIs(t, canceled.MarkReturned(now), ErrInvalidState)
		assert.ErrorIs(t, canceled.Cancel(now), ErrInvalidState)
	})
}

// TestCanTransitionTo 测试转换表查询
func TestCanTransitionTo(t *testing.T) {
	b := NewBooking("BKG8", 1, 1, time.Now(), time.Hour)

	assert.True(t, b.CanTransitionTo(StatusPickedUp))
	assert.True(t, b.CanTransitionTo(StatusCanceled))
	assert.False(t, b.CanTransitionTo(StatusReturned))
	assert.False(t, b.CanTransitionTo(StatusReserved), "不允许自转换")
}

// TestGenerateBookingNo 测试预订号格式
func TestGenerateBookingNo(t *testing.T) {
	no := GenerateBookingNo()
	require.True(t, len(no) > 3)
	assert.Equal(t, "BKG", no[:3])
	// BKG + 秒级时间戳(10位) + 6位随机数
	assert.Len(t, no, 3+10+6)
}
