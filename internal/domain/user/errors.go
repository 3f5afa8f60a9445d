package user

import (
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// 读者领域错误定义
var (
	// ErrUserNotFound 读者不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrUserDuplicate 读者已注册
	ErrUserDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该读者已注册")

	// ErrInvalidFullName 姓名格式不正确
	ErrInvalidFullName = apperrors.New(apperrors.ErrCodeInvalidArgument, "姓名必须由三个词组成")

	// ErrInvalidAge 年龄不合法
	ErrInvalidAge = apperrors.New(apperrors.ErrCodeInvalidArgument, "年龄必须大于0")

	// ErrInvalidPhone 手机号不合法
	ErrInvalidPhone = apperrors.New(apperrors.ErrCodeInvalidArgument, "手机号必须为11位数字")
)
