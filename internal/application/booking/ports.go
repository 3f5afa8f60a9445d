package booking

import (
	"context"
)

// TxManager 事务边界(工作单元)接口
// 设计说明:
// 1. 预订用例的多步变更(台账扣减+预订写入)必须整体提交或整体回滚,
//    事务边界由用例显式声明,而不是散落在存储调用里
// 2. fn内通过context拿到同一事务,fn返回error时回滚,返回nil时提交
// 3. 定义为接口便于单元测试注入假实现(mysql.TxManager是生产实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
