package rating

import (
	"context"

	"github.com/xiaolin/libfund/internal/domain/book"
)

// TxManager 事务边界接口(与预订用例同构,定义在使用方)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AddRatingUseCase 图书评分用例
// 评分是典型的读-改-写:同一本书的并发评分必须按书串行化,
// 否则两次并发评分会互相覆盖,均值和计数失真
// 实现:事务内SELECT FOR UPDATE锁定图书行 → 领域方法更新均值 → 回写
type AddRatingUseCase struct {
	bookRepo  book.Repository
	txManager TxManager
}

// NewAddRatingUseCase 创建评分用例
func NewAddRatingUseCase(bookRepo book.Repository, txManager TxManager) *AddRatingUseCase {
	return &AddRatingUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// Execute 执行评分
// 失败语义:评分超出[1,5] → ErrInvalidRating(任何读写之前拒绝);
// 图书不存在 → ErrBookNotFound
func (uc *AddRatingUseCase) Execute(ctx context.Context, bookID uint, rating int) error {
	// 参数校验前置,不合法的评分不产生任何数据库访问
	if rating < 1 || rating > 5 {
		return book.ErrInvalidRating
	}

	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}

		// 增量加权均值(等价于全历史算术平均,只增不减的ratings_count)
		if err := b.AddRating(rating); err != nil {
			return err
		}

		return uc.bookRepo.UpdateRating(txCtx, bookID, b.AverageRating, b.RatingsCount)
	})
}
