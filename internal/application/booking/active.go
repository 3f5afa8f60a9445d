package booking

import (
	"context"

	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
)

// GetActiveBookingUseCase 查询读者生效中预订的用例
// 只读查询,无需事务;无生效预订时返回(nil, nil),对话层据此提示
type GetActiveBookingUseCase struct {
	bookingRepo booking.Repository
	bookRepo    book.Repository
}

// NewGetActiveBookingUseCase 创建查询用例
func NewGetActiveBookingUseCase(bookingRepo booking.Repository, bookRepo book.Repository) *GetActiveBookingUseCase {
	return &GetActiveBookingUseCase{
		bookingRepo: bookingRepo,
		bookRepo:    bookRepo,
	}
}

// ActiveBookingResponse 生效预订响应DTO
type ActiveBookingResponse struct {
	BookingID       uint   `json:"booking_id"`
	BookingNo       string `json:"booking_no"`
	BookID          uint   `json:"book_id"`
	BookTitle       string `json:"book_title"`
	Status          string `json:"status"`
	BookingDate     string `json:"booking_date"`
	BookingDeadline string `json:"booking_deadline"`
}

// Execute 查询生效预订
func (uc *GetActiveBookingUseCase) Execute(ctx context.Context, userChatID int64) (*ActiveBookingResponse, error) {
	b, err := uc.bookingRepo.FindActiveByUserChatID(ctx, userChatID)
	if err != nil {
		if err == booking.ErrBookingNotFound {
			return nil, nil
		}
		return nil, err
	}

	// 补充书名供对话层展示
	bk, err := uc.bookRepo.FindByID(ctx, b.BookID)
	if err != nil {
		return nil, err
	}

	return &ActiveBookingResponse{
		BookingID:       b.ID,
		BookingNo:       b.BookingNo,
		BookID:          b.BookID,
		BookTitle:       bk.Title,
		Status:          b.Status.String(),
		BookingDate:     formatDateTime(b.BookingDate),
		BookingDeadline: formatDateTime(b.BookingDeadline),
	}, nil
}
