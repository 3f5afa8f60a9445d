package dto

// RegisterReaderRequest 读者注册请求
type RegisterReaderRequest struct {
	ChatID      int64  `json:"chat_id" binding:"required" example:"123456789"`
	FullName    string `json:"full_name" binding:"required" example:"Иванов Иван Иванович"` // 三个词
	Age         int    `json:"age" binding:"required,gt=0" example:"25"`
	PhoneNumber int64  `json:"phone_number" binding:"required" example:"79991234567"` // 11位数字
}

// ReaderResponse 读者响应
type ReaderResponse struct {
	ChatID      int64  `json:"chat_id" example:"123456789"`
	FullName    string `json:"full_name" example:"Иванов Иван Иванович"`
	Age         int    `json:"age" example:"25"`
	PhoneNumber int64  `json:"phone_number" example:"79991234567"`
}
