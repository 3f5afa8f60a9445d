package dto

// ReserveRequest 预订请求
type ReserveRequest struct {
	ChatID int64 `json:"chat_id" binding:"required" example:"123456789"` // 读者外部会话ID
	BookID uint  `json:"book_id" binding:"required" example:"1"`         // 图书ID
}

// ReserveResponse 预订响应
type ReserveResponse struct {
	BookingID       uint   `json:"booking_id" example:"1"`
	BookingNo       string `json:"booking_no" example:"BKG1735000000123456"`
	BookID          uint   `json:"book_id" example:"1"`
	Status          string `json:"status" example:"已预订"`
	BookingDate     string `json:"booking_date" example:"2025-01-02 15:04:05"`
	BookingDeadline string `json:"booking_deadline" example:"2025-01-05 15:04:05"`
}

// ActiveBookingResponse 生效预订响应
type ActiveBookingResponse struct {
	BookingID       uint   `json:"booking_id" example:"1"`
	BookingNo       string `json:"booking_no" example:"BKG1735000000123456"`
	BookID          uint   `json:"book_id" example:"1"`
	BookTitle       string `json:"book_title" example:"三体"`
	Status          string `json:"status" example:"已预订"`
	BookingDate     string `json:"booking_date" example:"2025-01-02 15:04:05"`
	BookingDeadline string `json:"booking_deadline" example:"2025-01-05 15:04:05"`
}
