package book

import (
	"context"

	"github.com/xiaolin/libfund/internal/domain/book"
)

// FindBookUseCase 图书查询用例
// 对话层按书名/作者/ISBN/语种查书,统一走带标签的查询变体
type FindBookUseCase struct {
	bookService book.Service
}

// NewFindBookUseCase 创建查询用例
func NewFindBookUseCase(bookService book.Service) *FindBookUseCase {
	return &FindBookUseCase{bookService: bookService}
}

// BookResponse 图书响应DTO
type BookResponse struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	ISBN            string   `json:"isbn"`
	ISBN13          string   `json:"isbn13"`
	Language        string   `json:"language"`
	NumPages        int      `json:"num_pages"`
	Publisher       string   `json:"publisher"`
	PublicationDate string   `json:"publication_date"`
	AgeLimit        int      `json:"age_limit"`
	AverageRating   float64  `json:"average_rating"`
	RatingsCount    int      `json:"ratings_count"`
	CountInFund     int      `json:"count_in_fund"`
	Available       bool     `json:"available"`
}

// Execute 按查询变体查找图书
func (uc *FindBookUseCase) Execute(ctx context.Context, q book.Query) (*BookResponse, error) {
	b, err := uc.bookService.GetBook(ctx, q)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

// toBookResponse 实体转DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Authors:         b.Authors,
		ISBN:            b.ISBN,
		ISBN13:          b.ISBN13,
		Language:        b.Language,
		NumPages:        b.NumPages,
		Publisher:       b.Publisher,
		PublicationDate: b.PublicationDate.Format("2006-01-02"),
		AgeLimit:        b.AgeLimit,
		AverageRating:   b.AverageRating,
		RatingsCount:    b.RatingsCount,
		CountInFund:     b.CountInFund,
		Available:       b.IsAvailable(),
	}
}
