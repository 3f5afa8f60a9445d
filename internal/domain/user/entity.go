package user

import (
	"time"
)

// User 读者实体(聚合根)
// DDD设计说明:
// 1. 读者以外部会话ID(ChatID)为业务主键,由对话层分配,本系统不生成
// 2. 注册后除显式编辑外不可变
// 3. 领域实体不依赖GORM tag(infrastructure层的Repository实现时会处理映射)
type User struct {
	ChatID      int64  // 外部会话ID(业务主键)
	FullName    string // 姓名(三个词:姓 名 父称)
	Age         int    // 年龄
	PhoneNumber int64  // 11位手机号
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser 创建新读者(工厂方法)
// 调用方需先通过Service完成字段校验
func NewUser(chatID int64, fullName string, age int, phoneNumber int64) *User {
	now := time.Now()
	return &User{
		ChatID:      chatID,
		FullName:    fullName,
		Age:         age,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
