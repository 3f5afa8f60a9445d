package booking

import (
	"context"

	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
	"github.com/xiaolin/libfund/internal/domain/user"
)

// 测试替身:内存仓储 + 直通事务管理器
// 用例的并发正确性依赖数据库的行锁和原子UPDATE,这里只验证
// 用例的编排逻辑(调用顺序、失败语义、状态回传)

// passthroughTx 直通事务:原样执行fn,不提供回滚
type passthroughTx struct {
	calls int
}

func (m *passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// fakeBookRepo 图书仓储测试替身
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	m := make(map[uint]*book.Book)
	for _, b := range books {
		m[b.ID] = b
	}
	return &fakeBookRepo{books: m}
}

func (f *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

func (f *fakeBookRepo) FindOne(_ context.Context, q book.Query) (*book.Book, error) {
	if b, ok := f.books[q.ID]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

func (f *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookRepo) ReserveCopy(_ context.Context, id uint) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.CountInFund <= 0 {
		return book.ErrUnavailable
	}
	b.CountInFund--
	return nil
}

func (f *fakeBookRepo) ReleaseCopy(_ context.Context, id uint) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.CountInFund < b.TotalCopies {
		b.CountInFund++
	}
	return nil
}

func (f *fakeBookRepo) IncrPickUpCount(_ context.Context, id uint) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.PickUpCount++
	return nil
}

func (f *fakeBookRepo) UpdateRating(_ context.Context, id uint, avg float64, count int) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.AverageRating = avg
	b.RatingsCount = count
	return nil
}

func (f *fakeBookRepo) Languages(_ context.Context, _, _ int) ([]string, error) {
	return nil, nil
}

func (f *fakeBookRepo) CountLanguages(_ context.Context) (int64, error) {
	return 0, nil
}

// fakeBookingRepo 预订仓储测试替身
type fakeBookingRepo struct {
	bookings map[uint]*booking.Booking
	nextID   uint
}

func newFakeBookingRepo(bookings ...*booking.Booking) *fakeBookingRepo {
	m := make(map[uint]*booking.Booking)
	var maxID uint
	for _, b := range bookings {
		m[b.ID] = b
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return &fakeBookingRepo{bookings: m, nextID: maxID + 1}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	b.ID = f.nextID
	f.nextID++
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uint) (*booking.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	return nil, booking.ErrBookingNotFound
}

func (f *fakeBookingRepo) LockByID(ctx context.Context, id uint) (*booking.Booking, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return booking.ErrBookingNotFound
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) FindLatestByUserChatID(_ context.Context, chatID int64) (*booking.Booking, error) {
	var latest *booking.Booking
	for _, b := range f.bookings {
		if b.UserChatID != chatID {
			continue
		}
		if latest == nil || b.ID > latest.ID {
			latest = b
		}
	}
	if latest == nil {
		return nil, booking.ErrBookingNotFound
	}
	return latest, nil
}

func (f *fakeBookingRepo) FindActiveByUserChatID(_ context.Context, chatID int64) (*booking.Booking, error) {
	var latest *booking.Booking
	for _, b := range f.bookings {
		if b.UserChatID != chatID || !b.IsActive() {
			continue
		}
		if latest == nil || b.ID > latest.ID {
			latest = b
		}
	}
	if latest == nil {
		return nil, booking.ErrBookingNotFound
	}
	return latest, nil
}

func (f *fakeBookingRepo) ListByUserChatID(_ context.Context, chatID int64, _, _ int) ([]*booking.Booking, int64, error) {
	var out []*booking.Booking
	for _, b := range f.bookings {
		if b.UserChatID == chatID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

// fakeUserRepo 读者仓储测试替身
type fakeUserRepo struct {
	users map[int64]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	m := make(map[int64]*user.User)
	for _, u := range users {
		m[u.ChatID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ChatID] = u
	return nil
}

func (f *fakeUserRepo) FindByChatID(_ context.Context, chatID int64) (*user.User, error) {
	if u, ok := f.users[chatID]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) LockByChatID(ctx context.Context, chatID int64) (*user.User, error) {
	return f.FindByChatID(ctx, chatID)
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	f.users[u.ChatID] = u
	return nil
}
