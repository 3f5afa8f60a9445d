package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiaolin/libfund/internal/domain/user"
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// userRepository 读者仓储实现(MySQL)
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建读者仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建读者
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUserDuplicate
		}
		return apperrors.Wrap(err, "创建读者失败")
	}

	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByChatID 根据外部会话ID查找读者
func (r *userRepository) FindByChatID(ctx context.Context, chatID int64) (*user.User, error) {
	var model UserModel
	err := r.getDB(ctx).Where("chat_id = ?", chatID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}

	return toUserEntity(&model), nil
}

// LockByChatID 悲观锁查询读者(SELECT FOR UPDATE)
// 预订流程在此排队:同一读者的并发预订串行化,
// "一人一订"的检查-再-写入不会被第二个事务穿插
func (r *userRepository) LockByChatID(ctx context.Context, chatID int64) (*user.User, error) {
	var model UserModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("chat_id = ?", chatID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "锁定读者失败")
	}

	return toUserEntity(&model), nil
}

// Update 更新读者信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新读者失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toUserModel 领域实体 → GORM模型
func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ChatID:      u.ChatID,
		FullName:    u.FullName,
		Age:         u.Age,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ChatID:      model.ChatID,
		FullName:    model.FullName,
		Age:         model.Age,
		PhoneNumber: model.PhoneNumber,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
