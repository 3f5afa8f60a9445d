package book

import (
	"context"
)

// FindKind 查询方式(带标签的查询变体)
// 设计说明:
// 1. 原型系统用一组可选参数在运行时分派查询方式,这里重构为显式枚举,
//    每种查询方式只要求自己的必填字段,在HTTP边界一次性解析
// 2. Repository按Kind分派,不再散落None判断
type FindKind int

const (
	FindByID       FindKind = iota + 1 // 按ID精确查询
	FindByTitle                        // 按书名模糊查询
	FindByISBN                         // 按ISBN-10/ISBN-13精确查询
	FindByAuthor                       // 按作者姓名模糊查询
	FindByLanguage                     // 按语种精确查询
)

// Query 图书查询条件
// 只有与Kind对应的字段有效
type Query struct {
	Kind     FindKind
	ID       uint
	Title    string
	ISBN     string
	Author   string
	Language string
}

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 库存台账操作(ReserveCopy/ReleaseCopy)是单条带守卫的原子UPDATE,
//    与同一本书上的并发预订互斥:剩1本时两个并发预订恰好一成一败
type Repository interface {
	// Create 创建图书(含作者多对多关联,必须在事务中调用)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindOne 按查询变体查找图书
	FindOne(ctx context.Context, q Query) (*Book, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 用于评分等读-改-写操作,按图书行串行化
	LockByID(ctx context.Context, id uint) (*Book, error)

	// ReserveCopy 预订占用一个副本
	// 原子地将count_in_fund减1,仅当当前值>0;否则返回ErrUnavailable且状态不变
	ReserveCopy(ctx context.Context, id uint) error

	// ReleaseCopy 归还一个副本
	// 原子地将count_in_fund加1,上限钳制在total_copies,绝不超出入藏总数
	ReleaseCopy(ctx context.Context, id uint) error

	// IncrPickUpCount 取书计数+1(原子UPDATE)
	IncrPickUpCount(ctx context.Context, id uint) error

	// UpdateRating 持久化评分聚合字段(需配合LockByID在事务中调用)
	UpdateRating(ctx context.Context, id uint, averageRating float64, ratingsCount int) error

	// Languages 分页查询馆藏语种(去重,每页5条,对话层翻页用)
	Languages(ctx context.Context, offset, limit int) ([]string, error)

	// CountLanguages 语种总数
	CountLanguages(ctx context.Context) (int64, error)
}
