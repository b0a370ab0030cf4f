package service

import (
	"context"

	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/sqlbuilder"
)

// Execer 参数化语句执行端口，由 *database.DB 实现
type Execer interface {
	Exec(ctx context.Context, st database.Statement) (database.Result, error)
}

// StatementFactory 每次调用返回一个新的语句构建器
// 服务内不复用构建器实例，避免并发请求共享可变状态
type StatementFactory func() *sqlbuilder.Builder

// statement 把构建结果包装为可执行语句
func statement(query string, values []any) database.Statement {
	return database.Statement{Query: query, Values: values}
}

// Visitor 请求级访问者上下文，显式传参而不是进程级静态字段
type Visitor struct {
	Member  *model.Member
	Session *model.Session
}

// IsGuest 访问者是否为访客
func (v *Visitor) IsGuest() bool {
	return v.Member == nil || v.Member.IsGuest
}
