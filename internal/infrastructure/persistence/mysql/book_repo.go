package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiaolin/libfund/internal/domain/book"
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换(作者多对多按姓名去重)
// 3. 库存台账操作(ReserveCopy/ReleaseCopy)是带守卫的原子UPDATE,
//    RowsAffected==0时补查一次区分"不存在"与"无可借副本"
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书(含作者关联)
// 作者按姓名FirstOrCreate去重,多本书共享同一作者行
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	db := r.getDB(ctx)

	// 1. 作者按姓名查找或创建
	authors := make([]AuthorModel, 0, len(b.Authors))
	for _, name := range b.Authors {
		var a AuthorModel
		if err := db.Where("name = ?", name).FirstOrCreate(&a, AuthorModel{Name: name}).Error; err != nil {
			return apperrors.Wrap(err, "创建作者失败")
		}
		authors = append(authors, a)
	}

	// 2. 领域实体 → GORM模型
	model := &BookModel{
		Title:           b.Title,
		Authors:         authors,
		ISBN:            b.ISBN,
		ISBN13:          b.ISBN13,
		Language:        b.Language,
		NumPages:        b.NumPages,
		Publisher:       b.Publisher,
		PublicationDate: b.PublicationDate,
		AgeLimit:        b.AgeLimit,
		AverageRating:   b.AverageRating,
		RatingsCount:    b.RatingsCount,
		PickUpCount:     b.PickUpCount,
		CountInFund:     b.CountInFund,
		TotalCopies:     b.TotalCopies,
	}

	// 3. 插入数据库(GORM同时写入book_authors关联表)
	if err := db.Create(model).Error; err != nil {
		// 唯一索引冲突 → ISBN重复
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 4. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).Preload("Authors").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindOne 按查询变体查找图书
// 每种Kind对应一种WHERE构造,模糊查询取第一条匹配
func (r *bookRepository) FindOne(ctx context.Context, q book.Query) (*book.Book, error) {
	db := r.getDB(ctx).Preload("Authors")

	switch q.Kind {
	case book.FindByID:
		db = db.Where("books.id = ?", q.ID)
	case book.FindByTitle:
		db = db.Where("books.title LIKE ?", "%"+q.Title+"%")
	case book.FindByISBN:
		// ISBN-10和ISBN-13任一匹配即命中
		db = db.Where("books.isbn = ? OR books.isbn13 = ?", q.ISBN, q.ISBN)
	case book.FindByAuthor:
		db = db.Joins("JOIN book_authors ba ON ba.book_id = books.id").
			Joins("JOIN authors a ON a.id = ba.author_id").
			Where("a.name LIKE ?", "%"+q.Author+"%")
	case book.FindByLanguage:
		db = db.Where("books.language = ?", q.Language)
	default:
		return nil, book.ErrInvalidQuery
	}

	var model BookModel
	if err := db.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
// 评分等读-改-写操作在此排队,必须在事务中调用
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// ReserveCopy 预订占用一个副本(带守卫的原子UPDATE)
// UPDATE books SET count_in_fund = count_in_fund - 1
// WHERE id = ? AND count_in_fund > 0
// 剩1本时两个并发预订恰好一成一败:守卫条件保证台账永不为负
func (r *bookRepository) ReserveCopy(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("count_in_fund > 0").
		Update("count_in_fund", gorm.Expr("count_in_fund - 1"))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "占用副本失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者无可借副本,再查一次确定原因
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		return book.ErrUnavailable
	}

	return nil
}

// ReleaseCopy 归还一个副本(上限钳制在total_copies)
// UPDATE books SET count_in_fund = LEAST(total_copies, count_in_fund + 1)
// WHERE id = ?
// 重复归还/取消不会把可借数推高过入藏总数
func (r *bookRepository) ReleaseCopy(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Update("count_in_fund", gorm.Expr("LEAST(total_copies, count_in_fund + 1)"))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "归还副本失败")
	}

	if result.RowsAffected == 0 {
		// 已在上限时MySQL报告0行变更,需区分"不存在"
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
	}

	return nil
}

// IncrPickUpCount 取书计数+1(原子UPDATE)
func (r *bookRepository) IncrPickUpCount(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Update("pick_up_count", gorm.Expr("pick_up_count + 1"))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新取书计数失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// UpdateRating 持久化评分聚合字段
// 需配合LockByID在同一事务中调用,否则并发评分会互相覆盖
func (r *bookRepository) UpdateRating(ctx context.Context, id uint, averageRating float64, ratingsCount int) error {
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"ratings_count":  ratingsCount,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评分失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Languages 分页查询馆藏语种(去重,按字典序)
func (r *bookRepository) Languages(ctx context.Context, offset, limit int) ([]string, error) {
	var langs []string
	err := r.getDB(ctx).Model(&BookModel{}).
		Distinct("language").
		Order("language ASC").
		Offset(offset).
		Limit(limit).
		Pluck("language", &langs).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询语种失败")
	}
	return langs, nil
}

// CountLanguages 语种总数
func (r *bookRepository) CountLanguages(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&BookModel{}).
		Distinct("language").
		Count(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计语种失败")
	}
	return total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	authors := make([]string, 0, len(model.Authors))
	for _, a := range model.Authors {
		authors = append(authors, a.Name)
	}
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Authors:         authors,
		ISBN:            model.ISBN,
		ISBN13:          model.ISBN13,
		Language:        model.Language,
		NumPages:        model.NumPages,
		Publisher:       model.Publisher,
		PublicationDate: model.PublicationDate,
		AgeLimit:        model.AgeLimit,
		AverageRating:   model.AverageRating,
		RatingsCount:    model.RatingsCount,
		PickUpCount:     model.PickUpCount,
		CountInFund:     model.CountInFund,
		TotalCopies:     model.TotalCopies,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
