package book

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(ISBN格式、副本数、作者列表)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 库存台账和预订状态机不在此处:它们属于预订用例的事务边界
type Service interface {
	// AddBook 图书入藏(管理端)
	// 业务规则:
	// - ISBN-10必须为10位数字,ISBN-13必须为13位数字
	// - 至少一位作者
	// - 副本数必须>=0
	// - ISBN不能重复
	AddBook(ctx context.Context, title string, authors []string, isbn, isbn13, language string,
		numPages int, publisher string, publicationDate time.Time, ageLimit, countInFund int) (*Book, error)

	// GetBook 按查询变体获取图书
	GetBook(ctx context.Context, q Query) (*Book, error)

	// Languages 分页获取馆藏语种及总数
	Languages(ctx context.Context, offset, limit int) ([]string, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 图书入藏
func (s *service) AddBook(ctx context.Context, title string, authors []string, isbn, isbn13, language string,
	numPages int, publisher string, publicationDate time.Time, ageLimit, countInFund int) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(isbn, 10) || !isValidISBN(isbn13, 13) {
		return nil, ErrInvalidISBN
	}

	// 2. 作者校验(去除空白项,至少保留一位)
	cleanAuthors := normalizeAuthors(authors)
	if len(cleanAuthors) == 0 {
		return nil, ErrInvalidQuery
	}

	// 3. 副本数校验
	if countInFund < 0 {
		return nil, ErrInvalidCopies
	}

	// 4. 检查ISBN是否已存在
	existing, err := s.repo.FindOne(ctx, Query{Kind: FindByISBN, ISBN: isbn})
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 5. 创建实体并持久化(Repository处理作者关联与唯一索引冲突)
	b := NewBook(title, cleanAuthors, isbn, isbn13, language, numPages, publisher, publicationDate, ageLimit, countInFund)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 按查询变体获取图书
func (s *service) GetBook(ctx context.Context, q Query) (*Book, error) {
	switch q.Kind {
	case FindByID:
		if q.ID == 0 {
			return nil, ErrInvalidQuery
		}
	case FindByTitle:
		if strings.TrimSpace(q.Title) == "" {
			return nil, ErrInvalidQuery
		}
	case FindByISBN:
		if !isValidISBN(q.ISBN, 10) && !isValidISBN(q.ISBN, 13) {
			return nil, ErrInvalidISBN
		}
	case FindByAuthor:
		if strings.TrimSpace(q.Author) == "" {
			return nil, ErrInvalidQuery
		}
	case FindByLanguage:
		if strings.TrimSpace(q.Language) == "" {
			return nil, ErrInvalidQuery
		}
	default:
		return nil, ErrInvalidQuery
	}
	return s.repo.FindOne(ctx, q)
}

// Languages 分页获取馆藏语种
func (s *service) Languages(ctx context.Context, offset, limit int) ([]string, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 5 // 对话层一页5个语种
	}
	langs, err := s.repo.Languages(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountLanguages(ctx)
	if err != nil {
		return nil, 0, err
	}
	return langs, total, nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

var nonDigitRE = regexp.MustCompile(`[^0-9]`)

// isValidISBN 校验ISBN格式
// 必须恰好为length位纯数字(生产环境应进一步校验校验位)
func isValidISBN(isbn string, length int) bool {
	if len(isbn) != length {
		return false
	}
	return !nonDigitRE.MatchString(isbn)
}

// normalizeAuthors 清洗作者列表,去掉首尾空白和空项
func normalizeAuthors(authors []string) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
