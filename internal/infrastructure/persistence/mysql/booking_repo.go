package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiaolin/libfund/internal/domain/booking"
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// bookingRepository 预订仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/booking/repository.go定义的接口
// 2. 预订记录从不删除,只新增和更新状态
// 3. "一人一订"检查走FindLatestByUserChatID,按ID降序取最新
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓储
func NewBookingRepository(db *gorm.DB) booking.Repository {
	return &bookingRepository{db: db}
}

// Create 创建预订记录
func (r *bookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	model := toBookingModel(b)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry
		}
		return apperrors.Wrap(err, "创建预订失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找预订
func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*booking.Booking, error) {
	var model BookingModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, apperrors.Wrap(err, "查询预订失败")
	}

	return toBookingEntity(&model), nil
}

// LockByID 悲观锁查询预订(SELECT FOR UPDATE)
// 并发的取书/取消/归还按预订行串行化,必须在事务中调用
func (r *bookingRepository) LockByID(ctx context.Context, id uint) (*booking.Booking, error) {
	var model BookingModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, apperrors.Wrap(err, "锁定预订失败")
	}

	return toBookingEntity(&model), nil
}

// Update 更新预订(状态和时间字段)
func (r *bookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	model := toBookingModel(b)
	model.ID = b.ID

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新预订失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindLatestByUserChatID 查找读者最近一条预订
// ID自增,ID最大即booking_date最新
func (r *bookingRepository) FindLatestByUserChatID(ctx context.Context, userChatID int64) (*booking.Booking, error) {
	var model BookingModel
	err := r.getDB(ctx).
		Where("user_chat_id = ?", userChatID).
		Order("id DESC").
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, apperrors.Wrap(err, "查询预订失败")
	}

	return toBookingEntity(&model), nil
}

// FindActiveByUserChatID 查找读者生效中的预订(已预订状态,最新一条)
func (r *bookingRepository) FindActiveByUserChatID(ctx context.Context, userChatID int64) (*booking.Booking, error) {
	var model BookingModel
	err := r.getDB(ctx).
		Where("user_chat_id = ? AND status = ?", userChatID, int(booking.StatusReserved)).
		Order("id DESC").
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, apperrors.Wrap(err, "查询生效预订失败")
	}

	return toBookingEntity(&model), nil
}

// ListByUserChatID 分页查询读者的预订历史(最新在前)
func (r *bookingRepository) ListByUserChatID(ctx context.Context, userChatID int64, page, pageSize int) ([]*booking.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	db := r.getDB(ctx).Model(&BookingModel{}).Where("user_chat_id = ?", userChatID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计预订失败")
	}

	var models []BookingModel
	err := db.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询预订历史失败")
	}

	bookings := make([]*booking.Booking, len(models))
	for i := range models {
		bookings[i] = toBookingEntity(&models[i])
	}

	return bookings, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookingModel 领域实体 → GORM模型
func toBookingModel(b *booking.Booking) *BookingModel {
	return &BookingModel{
		ID:              b.ID,
		BookingNo:       b.BookingNo,
		UserChatID:      b.UserChatID,
		BookID:          b.BookID,
		BookingDate:     b.BookingDate,
		BookingDeadline: b.BookingDeadline,
		PickUpDate:      b.PickUpDate,
		ReturnDate:      b.ReturnDate,
		Status:          int(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// toBookingEntity GORM模型 → 领域实体
func toBookingEntity(model *BookingModel) *booking.Booking {
	return &booking.Booking{
		ID:              model.ID,
		BookingNo:       model.BookingNo,
		UserChatID:      model.UserChatID,
		BookID:          model.BookID,
		BookingDate:     model.BookingDate,
		BookingDeadline: model.BookingDeadline,
		PickUpDate:      model.PickUpDate,
		ReturnDate:      model.ReturnDate,
		Status:          booking.Status(model.Status),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
