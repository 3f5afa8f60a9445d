package booking

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateBookingNo 生成预订号
// 设计原则:
// 1. 全局唯一(数据库唯一索引兜底)
// 2. 时间有序(便于排查)
// 3. 不可预测(防止恶意遍历)
//
// 格式:BKG + 时间戳(秒) + 6位随机数
// 示例:BKG1699248000123456
func GenerateBookingNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("BKG%d%06d", timestamp, random)
}
