package sqlbuilder

import (
	"errors"
	"fmt"
	"strings"
)

// Builder 链式 SQL 语句构建器
//
// 只负责拼装参数化语句文本和按占位符顺序收集绑定值，不执行任何查询
// 表名在 From/Join/InsertInto/Update/DeleteFrom 时自动加上表前缀
// 校验错误（空值数组、列值数量不一致等）累积到首个错误，由 Build 返回
type Builder struct {
	prefix   string
	clauses  []string
	values   []any
	hasWhere bool
	hasSet   bool
	distinct bool
	err      error
}

// 支持的数据库驱动，前缀规则按驱动解析
var supportedDrivers = map[string]struct{}{
	"mysql": {},
}

// New 创建构建器，不支持的驱动直接失败
func New(driver, tablePrefix string) (*Builder, error) {
	if _, ok := supportedDrivers[driver]; !ok {
		return nil, fmt.Errorf("sqlbuilder: unsupported database driver: %q", driver)
	}
	return &Builder{prefix: tablePrefix}, nil
}

// MustNew New 的 panic 版本，用于启动期构建工厂闭包
func MustNew(driver, tablePrefix string) *Builder {
	b, err := New(driver, tablePrefix)
	if err != nil {
		panic(err)
	}
	return b
}

// Clear 重置内部状态，便于复用
func (b *Builder) Clear() *Builder {
	b.clauses = b.clauses[:0]
	b.values = b.values[:0]
	b.hasWhere = false
	b.hasSet = false
	b.distinct = false
	b.err = nil
	return b
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) add(clause string, values ...any) *Builder {
	b.clauses = append(b.clauses, clause)
	b.values = append(b.values, values...)
	return b
}

// Select SELECT 子句
func (b *Builder) Select(columns ...string) *Builder {
	if len(columns) == 0 {
		return b.fail(errors.New("sqlbuilder: select requires at least one column"))
	}
	kw := "SELECT"
	if b.distinct {
		kw = "SELECT DISTINCT"
	}
	return b.add(kw + " " + strings.Join(columns, ", "))
}

// Distinct 标记 SELECT DISTINCT，在 Select 之前调用
func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// From FROM 子句，表名自动加前缀
func (b *Builder) From(table string) *Builder {
	return b.add("FROM " + b.prefix + table)
}

// Join JOIN 子句，kind 为 INNER/LEFT/RIGHT 等
func (b *Builder) Join(kind, table, on string) *Builder {
	return b.add(strings.ToUpper(kind) + " JOIN " + b.prefix + table + " ON " + on)
}

// Where WHERE 条件，values 按占位符顺序绑定
func (b *Builder) Where(condition string, values ...any) *Builder {
	b.hasWhere = true
	return b.add("WHERE "+condition, values...)
}

// AndWhere AND 条件
func (b *Builder) AndWhere(condition string, values ...any) *Builder {
	return b.add("AND "+condition, values...)
}

// OrWhere OR 条件
func (b *Builder) OrWhere(condition string, values ...any) *Builder {
	return b.add("OR "+condition, values...)
}

// In IN 条件，接在已有 WHERE 后则自动用 AND 连接
func (b *Builder) In(column string, values []any) *Builder {
	if len(values) == 0 {
		return b.fail(errors.New("sqlbuilder: in requires a non-empty value list"))
	}
	placeholders := strings.Repeat("?, ", len(values))
	placeholders = placeholders[:len(placeholders)-2]

	clause := column + " IN (" + placeholders + ")"
	if b.hasWhere {
		clause = "AND " + clause
	} else {
		clause = "WHERE " + clause
		b.hasWhere = true
	}
	return b.add(clause, values...)
}

// Between BETWEEN 条件，必须恰好两个值
func (b *Builder) Between(column string, values []any) *Builder {
	if len(values) != 2 {
		return b.fail(errors.New("sqlbuilder: between requires exactly two values"))
	}
	clause := column + " BETWEEN ? AND ?"
	if b.hasWhere {
		clause = "AND " + clause
	} else {
		clause = "WHERE " + clause
		b.hasWhere = true
	}
	return b.add(clause, values...)
}

// GroupBy GROUP BY 子句
func (b *Builder) GroupBy(columns ...string) *Builder {
	if len(columns) == 0 {
		return b.fail(errors.New("sqlbuilder: group by requires at least one column"))
	}
	return b.add("GROUP BY " + strings.Join(columns, ", "))
}

// Having HAVING 子句
func (b *Builder) Having(condition string, values ...any) *Builder {
	return b.add("HAVING "+condition, values...)
}

// OrderBy ORDER BY 子句
func (b *Builder) OrderBy(clause string) *Builder {
	return b.add("ORDER BY " + clause)
}

// Limit LIMIT 子句
// 值只走占位符绑定，保证占位符与绑定值数量始终一致
func (b *Builder) Limit(n int) *Builder {
	return b.add("LIMIT ?", n)
}

// Offset OFFSET 子句
func (b *Builder) Offset(n int) *Builder {
	return b.add("OFFSET ?", n)
}

// InsertInto INSERT 语句，列与值必须等长且非空
func (b *Builder) InsertInto(table string, columns []string, values []any) *Builder {
	if len(columns) == 0 || len(values) == 0 {
		return b.fail(errors.New("sqlbuilder: insert requires columns and values"))
	}
	if len(columns) != len(values) {
		return b.fail(fmt.Errorf("sqlbuilder: insert columns/values mismatch: %d != %d",
			len(columns), len(values)))
	}
	placeholders := strings.Repeat("?, ", len(values))
	placeholders = placeholders[:len(placeholders)-2]

	clause := "INSERT INTO " + b.prefix + table +
		" (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")"
	return b.add(clause, values...)
}

// Update UPDATE 语句
func (b *Builder) Update(table string) *Builder {
	return b.add("UPDATE " + b.prefix + table)
}

// Set SET 赋值，列与值必须等长
func (b *Builder) Set(columns []string, values []any) *Builder {
	if len(columns) == 0 {
		return b.fail(errors.New("sqlbuilder: set requires at least one column"))
	}
	if len(columns) != len(values) {
		return b.fail(fmt.Errorf("sqlbuilder: set columns/values mismatch: %d != %d",
			len(columns), len(values)))
	}
	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = col + " = ?"
	}
	b.hasSet = true
	return b.add("SET "+strings.Join(assignments, ", "), values...)
}

// SetExpr 原样赋值表达式，用于 views = views + 1 这类自增写法
func (b *Builder) SetExpr(assignment string, values ...any) *Builder {
	if b.hasSet {
		last := len(b.clauses) - 1
		b.clauses[last] = b.clauses[last] + ", " + assignment
		b.values = append(b.values, values...)
		return b
	}
	b.hasSet = true
	return b.add("SET "+assignment, values...)
}

// DeleteFrom DELETE 语句
func (b *Builder) DeleteFrom(table string) *Builder {
	return b.add("DELETE FROM " + b.prefix + table)
}

// OnDuplicateKey ON DUPLICATE KEY UPDATE 子句，终结整条语句
func (b *Builder) OnDuplicateKey(columns []string) *Builder {
	if len(columns) == 0 {
		return b.fail(errors.New("sqlbuilder: on duplicate key requires at least one column"))
	}
	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = col + " = VALUES(" + col + ")"
	}
	return b.add("ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ") + ";")
}

// Build 产出语句文本与按占位符顺序排列的绑定值
func (b *Builder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	values := make([]any, len(b.values))
	copy(values, b.values)
	return strings.Join(b.clauses, " "), values, nil
}
