package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository 内存实现,仅覆盖领域服务用到的方法
type fakeRepository struct {
	books  map[uint]*Book
	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{books: make(map[uint]*Book), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, b *Book) error {
	for _, existing := range f.books {
		if existing.ISBN == b.ISBN || existing.ISBN13 == b.ISBN13 {
			return ErrISBNDuplicate
		}
	}
	b.ID = f.nextID
	f.nextID++
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id uint) (*Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, ErrBookNotFound
}

func (f *fakeRepository) FindOne(_ context.Context, q Query) (*Book, error) {
	for _, b := range f.books {
		switch q.Kind {
		case FindByID:
			if b.ID == q.ID {
				return b, nil
			}
		case FindByISBN:
			if b.ISBN == q.ISBN || b.ISBN13 == q.ISBN {
				return b, nil
			}
		case FindByTitle:
			if b.Title == q.Title {
				return b, nil
			}
		case FindByLanguage:
			if b.Language == q.Language {
				return b, nil
			}
		case FindByAuthor:
			for _, a := range b.Authors {
				if a == q.Author {
					return b, nil
				}
			}
		}
	}
	return nil, ErrBookNotFound
}

func (f *fakeRepository) LockByID(ctx context.Context, id uint) (*Book, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRepository) ReserveCopy(_ context.Context, id uint) error {
	b, ok := f.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if b.CountInFund <= 0 {
		return ErrUnavailable
	}
	b.CountInFund--
	return nil
}

func (f *fakeRepository) ReleaseCopy(_ context.Context, id uint) error {
	b, ok := f.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if b.CountInFund < b.TotalCopies {
		b.CountInFund++
	}
	return nil
}

func (f *fakeRepository) IncrPickUpCount(_ context.Context, id uint) error {
	b, ok := f.books[id]
	if !ok {
		return ErrBookNotFound
	}
	b.PickUpCount++
	return nil
}

func (f *fakeRepository) UpdateRating(_ context.Context, id uint, avg float64, count int) error {
	b, ok := f.books[id]
	if !ok {
		return ErrBookNotFound
	}
	b.AverageRating = avg
	b.RatingsCount = count
	return nil
}

func (f *fakeRepository) Languages(_ context.Context, offset, limit int) ([]string, error) {
	seen := make(map[string]bool)
	var langs []string
	for _, b := range f.books {
		if !seen[b.Language] {
			seen[b.Language] = true
			langs = append(langs, b.Language)
		}
	}
	if offset >= len(langs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(langs) {
		end = len(langs)
	}
	return langs[offset:end], nil
}

func (f *fakeRepository) CountLanguages(_ context.Context) (int64, error) {
	seen := make(map[string]bool)
	for _, b := range f.books {
		seen[b.Language] = true
	}
	return int64(len(seen)), nil
}

var pubDate = time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)

// TestServiceAddBook 测试图书入藏的业务规则
func TestServiceAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("正常入藏", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		b, err := svc.AddBook(ctx, "三体", []string{"刘慈欣"}, "7536692935", "9787536692930",
			"chi", 302, "重庆出版社", pubDate, 12, 5)
		require.NoError(t, err)
		assert.NotZero(t, b.ID)
		assert.Equal(t, 5, b.TotalCopies)
	})

	t.Run("ISBN位数错误被拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.AddBook(ctx, "三体", []string{"刘慈欣"}, "123", "9787536692930",
			"chi", 302, "", pubDate, 12, 5)
		assert.ErrorIs(t, err, ErrInvalidISBN)

		_, err = svc.AddBook(ctx, "三体", []string{"刘慈欣"}, "7536692935", "978753669293X",
			"chi", 302, "", pubDate, 12, 5)
		assert.ErrorIs(t, err, ErrInvalidISBN, "含非数字字符的ISBN应被拒绝")
	})

	t.Run("作者列表为空被拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.AddBook(ctx, "三体", []string{"  ", ""}, "7536692935", "9787536692930",
			"chi", 302, "", pubDate, 12, 5)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("副本数为负被拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.AddBook(ctx, "三体", []string{"刘慈欣"}, "7536692935", "9787536692930",
			"chi", 302, "", pubDate, 12, -1)
		assert.ErrorIs(t, err, ErrInvalidCopies)
	})

	t.Run("重复ISBN被拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.AddBook(ctx, "三体", []string{"刘慈欣"}, "7536692935", "9787536692930",
			"chi", 302, "", pubDate, 12, 5)
		require.NoError(t, err)

		_, err = svc.AddBook(ctx, "三体(新版)", []string{"刘慈欣"}, "7536692935", "9787536692931",
			"chi", 302, "", pubDate, 12, 3)
		assert.ErrorIs(t, err, ErrISBNDuplicate)
	})
}

// TestServiceGetBook 测试查询变体校验
func TestServiceGetBook(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.AddBook(ctx, "三体", []string{"刘慈欣"}, "7536692935", "9787536692930",
		"chi", 302, "重庆出版社", pubDate, 12, 5)
	require.NoError(t, err)

	t.Run("按书名查询", func(t *testing.T) {
		b, err := svc.GetBook(ctx, Query{Kind: FindByTitle, Title: "三体"})
		require.NoError(t, err)
		assert.Equal(t, "三体", b.Title)
	})

	t.Run("按ISBN-13查询", func(t *testing.T) {
		b, err := svc.GetBook(ctx, Query{Kind: FindByISBN, ISBN: "9787536692930"})
		require.NoError(t, err)
		assert.Equal(t, "三体", b.Title)
	})

	t.Run("按作者查询", func(t *testing.T) {
		b, err := svc.GetBook(ctx, Query{Kind: FindByAuthor, Author: "刘慈欣"})
		require.NoError(t, err)
		assert.Equal(t, "三体", b.Title)
	})

	t.Run("空书名被拒绝", func(t *testing.T) {
		_, err := svc.GetBook(ctx, Query{Kind: FindByTitle, Title: "   "})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("非法ISBN被拒绝", func(t *testing.T) {
		_, err := svc.GetBook(ctx, Query{Kind: FindByISBN, ISBN: "abc"})
		assert.ErrorIs(t, err, ErrInvalidISBN)
	})

	t.Run("未知查询方式被拒绝", func(t *testing.T) {
		_, err := svc.GetBook(ctx, Query{})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("未命中返回不存在", func(t *testing.T) {
		_, err := svc.GetBook(ctx, Query{Kind: FindByTitle, Title: "不存在的书"})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
