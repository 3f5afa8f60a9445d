package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是馆藏图书聚合的根实体,包含书目信息和馆藏/评分统计字段
// 2. CountInFund是当前可借副本数,TotalCopies是入藏时确定的总副本数,
//    两者的差即为"借出中"(已预订+已取书)的副本数
// 3. AverageRating/RatingsCount由评分聚合维护,PickUpCount在取书时+1
// 4. ISBN-10/ISBN-13作为业务唯一标识(数据库层保证唯一性)
type Book struct {
	ID              uint
	Title           string    // 书名
	Authors         []string  // 作者(多对多,按姓名)
	ISBN            string    // ISBN-10
	ISBN13          string    // ISBN-13
	Language        string    // 语种
	NumPages        int       // 页数
	Publisher       string    // 出版社
	PublicationDate time.Time // 出版日期
	AgeLimit        int       // 年龄限制(0/6/12/16/18)
	AverageRating   float64   // 平均评分(1-5的加权滑动均值)
	RatingsCount    int       // 评分次数
	PickUpCount     int       // 累计取书次数
	CountInFund     int       // 当前可借副本数
	TotalCopies     int       // 入藏总副本数(仅管理端调整)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// countInFund为入藏副本数,同时作为TotalCopies的初始值
func NewBook(title string, authors []string, isbn, isbn13, language string,
	numPages int, publisher string, publicationDate time.Time, ageLimit, countInFund int) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Authors:         authors,
		ISBN:            isbn,
		ISBN13:          isbn13,
		Language:        language,
		NumPages:        numPages,
		Publisher:       publisher,
		PublicationDate: publicationDate,
		AgeLimit:        ageLimit,
		AverageRating:   0.0,
		RatingsCount:    0,
		PickUpCount:     0,
		CountInFund:     countInFund,
		TotalCopies:     countInFund,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsAvailable 是否有可借副本
func (b *Book) IsAvailable() bool {
	return b.CountInFund > 0
}

// AddRating 追加一次评分(领域行为)
// 业务规则:评分必须在1-5之间
// 算法:增量加权均值 α = n/(n+1)，avg ← α·avg + (1−α)·r
// 等价于历史所有评分的算术平均,无需保留评分明细
// 注意:必须在行锁保护下调用(并发评分需按图书串行化)
func (b *Book) AddRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	alpha := float64(b.RatingsCount) / float64(b.RatingsCount+1)
	b.AverageRating = alpha*b.AverageRating + (1-alpha)*float64(rating)
	b.RatingsCount++
	b.UpdatedAt = time.Now()
	return nil
}
