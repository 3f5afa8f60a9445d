package book

import (
	"context"

	"github.com/xiaolin/libfund/internal/domain/book"
)

// LanguagesUseCase 馆藏语种分页用例
// 对话层按语种浏览馆藏,每页5个语种翻页
type LanguagesUseCase struct {
	bookService book.Service
}

// NewLanguagesUseCase 创建语种分页用例
func NewLanguagesUseCase(bookService book.Service) *LanguagesUseCase {
	return &LanguagesUseCase{bookService: bookService}
}

// LanguagesResponse 语种分页响应
type LanguagesResponse struct {
	Languages []string `json:"languages"`
	Total     int64    `json:"total"`
	Offset    int      `json:"offset"`
	Limit     int      `json:"limit"`
}

// Execute 分页获取语种
func (uc *LanguagesUseCase) Execute(ctx context.Context, offset, limit int) (*LanguagesResponse, error) {
	langs, total, err := uc.bookService.Languages(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	if offset < 0 {
		offset = 0
	}
	return &LanguagesResponse{
		Languages: langs,
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	}, nil
}
