package book

import (
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrUnavailable 无可借副本(预订时库存为0)
	ErrUnavailable = apperrors.ErrUnavailable

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidArgument, "ISBN格式不正确(需10位或13位数字)")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidArgument, "评分必须在1到5之间")

	// ErrInvalidCopies 副本数不合法
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidArgument, "副本数不能为负数")

	// ErrInvalidQuery 查询条件不合法
	ErrInvalidQuery = apperrors.New(apperrors.ErrCodeInvalidArgument, "查询条件不合法")
)
