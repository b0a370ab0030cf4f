package sqlbuilder

import (
	"reflect"
	"testing"
)

func newTestBuilder(t *testing.T, prefix string) *Builder {
	t.Helper()
	b, err := New("mysql", prefix)
	if err != nil {
		t.Fatalf("failed to create builder: %v", err)
	}
	return b
}

func TestNewUnsupportedDriver(t *testing.T) {
	if _, err := New("postgres", ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for empty driver")
	}
}

func TestSelectFrom(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Select("id", "name").From("users").Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT id, name FROM users" {
		t.Errorf("unexpected query: %q", query)
	}
	if len(values) != 0 {
		t.Errorf("expected no values, got %v", values)
	}
}

func TestTablePrefix(t *testing.T) {
	b := newTestBuilder(t, "nb_")
	query, _, err := b.Select("id").From("topics").
		Join("LEFT", "posts", "posts.topicId = topics.id").
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := "SELECT id FROM nb_topics LEFT JOIN nb_posts ON posts.topicId = topics.id"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
}

func TestWhereValueOrdering(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Select("id").From("posts").
		Where("topicId = ?", 5).
		AndWhere("createdBy = ?", 7).
		OrWhere("isFirstPost = ?", 1).
		OrderBy("createdAt ASC").
		Limit(10).
		Offset(20).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := "SELECT id FROM posts WHERE topicId = ? AND createdBy = ? OR isFirstPost = ? ORDER BY createdAt ASC LIMIT ? OFFSET ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	wantValues := []any{5, 7, 1, 10, 20}
	if !reflect.DeepEqual(values, wantValues) {
		t.Errorf("values = %v, want %v", values, wantValues)
	}
}

func TestLimitParameterizesOnly(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Select("id").From("topics").Limit(25).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT id FROM topics LIMIT ?" {
		t.Errorf("limit must not interpolate its value, got %q", query)
	}
	if !reflect.DeepEqual(values, []any{25}) {
		t.Errorf("values = %v, want [25]", values)
	}
}

func TestInAfterWhere(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Select("id").From("topics").
		Where("forumId = ?", 3).
		In("id", []any{1, 2, 3}).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := "SELECT id FROM topics WHERE forumId = ? AND id IN (?, ?, ?)"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(values, []any{3, 1, 2, 3}) {
		t.Errorf("values = %v", values)
	}
}

func TestInWithoutWhere(t *testing.T) {
	b := newTestBuilder(t, "")
	query, _, err := b.Select("id").From("tags").In("id", []any{9}).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT id FROM tags WHERE id IN (?)" {
		t.Errorf("query = %q", query)
	}
}

func TestInRejectsEmptyValues(t *testing.T) {
	b := newTestBuilder(t, "")
	if _, _, err := b.Select("id").From("tags").In("id", nil).Build(); err == nil {
		t.Fatal("expected error for empty in values")
	}
}

func TestBetween(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Select("id").From("topics").
		Between("createdAt", []any{100, 200}).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT id FROM topics WHERE createdAt BETWEEN ? AND ?" {
		t.Errorf("query = %q", query)
	}
	if !reflect.DeepEqual(values, []any{100, 200}) {
		t.Errorf("values = %v", values)
	}
}

func TestBetweenRejectsWrongArity(t *testing.T) {
	for _, values := range [][]any{nil, {1}, {1, 2, 3}} {
		b := newTestBuilder(t, "")
		if _, _, err := b.Select("id").From("t").Between("x", values).Build(); err == nil {
			t.Errorf("expected error for between with %d values", len(values))
		}
	}
}

func TestInsertOnDuplicateKey(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.InsertInto("t", []string{"a", "b"}, []any{1, 2}).
		OnDuplicateKey([]string{"a", "b"}).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := "INSERT INTO t (a, b) VALUES (?, ?) ON DUPLICATE KEY UPDATE a = VALUES(a), b = VALUES(b);"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(values, []any{1, 2}) {
		t.Errorf("values = %v", values)
	}
}

func TestInsertRejectsEmptyAndRagged(t *testing.T) {
	b := newTestBuilder(t, "")
	if _, _, err := b.InsertInto("t", nil, nil).Build(); err == nil {
		t.Fatal("expected error for empty insert")
	}
	b = newTestBuilder(t, "")
	if _, _, err := b.InsertInto("t", []string{"a", "b"}, []any{1}).Build(); err == nil {
		t.Fatal("expected error for ragged insert")
	}
}

func TestUpdateSet(t *testing.T) {
	b := newTestBuilder(t, "nb_")
	query, values, err := b.Update("topics").
		Set([]string{"title", "locked"}, []any{"hello", 1}).
		Where("id = ?", 9).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := "UPDATE nb_topics SET title = ?, locked = ? WHERE id = ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(values, []any{"hello", 1, 9}) {
		t.Errorf("values = %v", values)
	}
}

func TestSetRejectsMismatch(t *testing.T) {
	b := newTestBuilder(t, "")
	if _, _, err := b.Update("t").Set([]string{"a"}, []any{1, 2}).Build(); err == nil {
		t.Fatal("expected error for mismatched set")
	}
}

func TestSetExpr(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Update("topics").
		SetExpr("totalViews = totalViews + 1").
		Where("id = ?", 4).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "UPDATE topics SET totalViews = totalViews + 1 WHERE id = ?" {
		t.Errorf("query = %q", query)
	}
	if !reflect.DeepEqual(values, []any{4}) {
		t.Errorf("values = %v", values)
	}

	b = newTestBuilder(t, "")
	query, _, err = b.Update("topics").
		Set([]string{"lastPostId"}, []any{12}).
		SetExpr("totalReplies = totalReplies + 1").
		Where("id = ?", 4).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "UPDATE topics SET lastPostId = ?, totalReplies = totalReplies + 1 WHERE id = ?" {
		t.Errorf("query = %q", query)
	}
}

func TestDeleteFrom(t *testing.T) {
	b := newTestBuilder(t, "nb_")
	query, values, err := b.DeleteFrom("liked_content").
		Where("contentType = ?", "topic").
		AndWhere("contentId = ?", 5).
		AndWhere("memberId = ?", 7).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := "DELETE FROM nb_liked_content WHERE contentType = ? AND contentId = ? AND memberId = ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(values, []any{"topic", 5, 7}) {
		t.Errorf("values = %v", values)
	}
}

func TestDistinct(t *testing.T) {
	b := newTestBuilder(t, "")
	query, _, err := b.Distinct().Select("memberId").From("sessions").Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT DISTINCT memberId FROM sessions" {
		t.Errorf("query = %q", query)
	}
}

func TestGroupByHaving(t *testing.T) {
	b := newTestBuilder(t, "")
	query, values, err := b.Select("forumId", "COUNT(*)").From("topics").
		GroupBy("forumId").
		Having("COUNT(*) > ?", 10).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT forumId, COUNT(*) FROM topics GROUP BY forumId HAVING COUNT(*) > ?" {
		t.Errorf("query = %q", query)
	}
	if !reflect.DeepEqual(values, []any{10}) {
		t.Errorf("values = %v", values)
	}
}

func TestClear(t *testing.T) {
	b := newTestBuilder(t, "")
	b.Select("id").From("topics").Where("id = ?", 1)
	b.Clear()
	query, values, err := b.Select("title").From("forums").Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if query != "SELECT title FROM forums" {
		t.Errorf("query after clear = %q", query)
	}
	if len(values) != 0 {
		t.Errorf("values after clear = %v", values)
	}

	// Clear 同时清掉累积错误
	b.Clear()
	b.In("id", nil)
	b.Clear()
	if _, _, err := b.Select("id").From("t").Build(); err != nil {
		t.Errorf("expected error to be cleared, got %v", err)
	}
}

func TestFirstErrorWins(t *testing.T) {
	b := newTestBuilder(t, "")
	_, _, err := b.Select("id").From("t").In("x", nil).Between("y", []any{1}).Build()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "sqlbuilder: in requires a non-empty value list" {
		t.Errorf("expected first error to win, got %q", got)
	}
}
