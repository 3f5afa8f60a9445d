package book

import (
	"context"
	"time"

	"github.com/xiaolin/libfund/internal/domain/book"
)

// TxManager 事务边界接口(定义在使用方)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AddBookUseCase 图书入藏用例(管理端)
// 入藏涉及图书表与作者关联表的多条写入,必须在同一事务中完成
type AddBookUseCase struct {
	bookService book.Service
	txManager   TxManager
}

// NewAddBookUseCase 创建入藏用例
func NewAddBookUseCase(bookService book.Service, txManager TxManager) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		txManager:   txManager,
	}
}

// AddBookRequest 入藏请求
type AddBookRequest struct {
	Title           string
	Authors         []string
	ISBN            string
	ISBN13          string
	Language        string
	NumPages        int
	Publisher       string
	PublicationDate time.Time
	AgeLimit        int
	CountInFund     int
}

// Execute 执行入藏
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*book.Book, error) {
	var created *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookService.AddBook(txCtx, req.Title, req.Authors, req.ISBN, req.ISBN13,
			req.Language, req.NumPages, req.Publisher, req.PublicationDate, req.AgeLimit, req.CountInFund)
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
