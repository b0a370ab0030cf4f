package service

import (
	"context"
	"testing"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/sqlbuilder"
)

// 测试基座：fakeSource 扮演数据库表，fakeDB 在 Exec 时通过钩子改表，
// 写后的 cache.Update 会从 fakeSource 重新加载，借此验证完整写路径

type fakeSource struct {
	tables map[string][]cache.Record
}

func (s *fakeSource) LoadCollection(_ context.Context, name string) ([]cache.Record, error) {
	return s.tables[name], nil
}

type fakeDB struct {
	execs  []database.Statement
	onExec func(st database.Statement) database.Result
}

func (f *fakeDB) Exec(_ context.Context, st database.Statement) (database.Result, error) {
	f.execs = append(f.execs, st)
	if f.onExec != nil {
		return f.onExec(st), nil
	}
	return database.Result{}, nil
}

func newHarness(t *testing.T, tables map[string][]cache.Record) (*fakeSource, cache.Provider, *fakeDB) {
	t.Helper()
	if tables == nil {
		tables = map[string][]cache.Record{}
	}
	source := &fakeSource{tables: tables}
	provider := cache.NewMemory(source, 0)
	if err := provider.Warm(context.Background()); err != nil {
		t.Fatalf("warm failed: %v", err)
	}
	return source, provider, &fakeDB{}
}

func testStmt() *sqlbuilder.Builder {
	return sqlbuilder.MustNew("mysql", "")
}
