package booking

import (
	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// 预订领域错误定义
var (
	// ErrBookingNotFound 预订记录不存在
	ErrBookingNotFound = apperrors.ErrBookingNotFound

	// ErrInvalidState 非法的状态转换(含对终态预订的任何操作)
	ErrInvalidState = apperrors.ErrInvalidState

	// ErrAlreadyReserved 读者已有生效中的预订
	ErrAlreadyReserved = apperrors.ErrAlreadyReserved
)
