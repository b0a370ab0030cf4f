package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/apperr"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/tracker"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

func newForumService(t *testing.T, provider cache.Provider, db *fakeDB) *ForumService {
	t.Helper()
	clicks, err := tracker.New(time.Minute)
	if err != nil {
		t.Fatalf("tracker init failed: %v", err)
	}
	t.Cleanup(func() { clicks.Close() })

	categories := repository.NewCategoryRepository(provider)
	forums := repository.NewForumRepository(provider)
	topics := repository.NewTopicRepository(provider)
	posts := repository.NewPostRepository(provider)
	return NewForumService(provider, db, testStmt, categories, forums, topics, posts, clicks)
}

func TestForumTree(t *testing.T) {
	_, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Categories: {
			{"id": int64(1), "title": "Main", "sortOrder": int64(1), "visible": int64(1)},
			{"id": int64(2), "title": "Hidden", "sortOrder": int64(2)},
		},
		cache.Forums: {
			{"id": int64(1), "categoryId": int64(1), "title": "General", "sortOrder": int64(2), "visible": int64(1), "lastPostId": int64(10)},
			{"id": int64(2), "categoryId": int64(1), "title": "News", "sortOrder": int64(1), "visible": int64(1)},
			{"id": int64(3), "categoryId": int64(1), "title": "Sub", "visible": int64(1), "hasParent": int64(1), "parentId": int64(1), "lastPostId": int64(11)},
			{"id": int64(4), "categoryId": int64(1), "title": "Secret"},
		},
		cache.Topics: {
			{"id": int64(1), "forumId": int64(1)},
			{"id": int64(2), "forumId": int64(3)},
		},
		cache.Posts: {
			{"id": int64(10), "forumId": int64(1), "topicId": int64(1), "createdAt": int64(1000)},
			{"id": int64(11), "forumId": int64(3), "topicId": int64(2), "createdAt": int64(2000)},
		},
	})
	svc := newForumService(t, provider, db)

	tree, err := svc.GetForumTree()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 不可见分类被过滤
	if len(tree) != 1 {
		t.Fatalf("expected 1 category node, got %d", len(tree))
	}
	node := tree[0]
	if len(node.Forums) != 2 {
		t.Fatalf("expected 2 top-level forums, got %d", len(node.Forums))
	}
	// 顶层按 sortOrder 排列
	if node.Forums[0].Forum.Title != "News" || node.Forums[1].Forum.Title != "General" {
		t.Fatalf("unexpected forum order: %s, %s", node.Forums[0].Forum.Title, node.Forums[1].Forum.Title)
	}
	if len(node.Forums[1].Children) != 1 || node.Forums[1].Children[0].Forum.Title != "Sub" {
		t.Fatalf("expected Sub under General")
	}

	// 计数与最后发帖自下而上汇总
	general := node.Forums[1]
	if general.TotalTopics != 2 || general.TotalPosts != 2 {
		t.Fatalf("subtree totals = %d topics / %d posts, want 2 / 2", general.TotalTopics, general.TotalPosts)
	}
	if general.LastPost == nil || general.LastPost.ID != 11 {
		t.Fatalf("subtree last post should be the newer child post, got %+v", general.LastPost)
	}
	if general.Children[0].TotalTopics != 1 {
		t.Fatalf("child totals = %d topics, want 1", general.Children[0].TotalTopics)
	}
}

func TestGetSubForums(t *testing.T) {
	_, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Forums: {
			{"id": int64(1), "categoryId": int64(1), "visible": int64(1)},
			{"id": int64(2), "categoryId": int64(1), "visible": int64(1), "hasParent": int64(1), "parentId": int64(1), "sortOrder": int64(2)},
			{"id": int64(3), "categoryId": int64(1), "visible": int64(1), "hasParent": int64(1), "parentId": int64(1), "sortOrder": int64(1)},
		},
	})
	svc := newForumService(t, provider, db)

	children, err := svc.GetSubForums(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 2 || children[0].ID != 3 || children[1].ID != 2 {
		t.Fatalf("unexpected sub forums: %+v", children)
	}
}

func TestForumTotals(t *testing.T) {
	_, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Forums: {{"id": int64(1), "visible": int64(1)}},
		cache.Topics: {
			{"id": int64(1), "forumId": int64(1)},
			{"id": int64(2), "forumId": int64(1)},
			{"id": int64(3), "forumId": int64(2)},
		},
		cache.Posts: {
			{"id": int64(1), "forumId": int64(1)},
		},
	})
	svc := newForumService(t, provider, db)

	topics, err := svc.GetTotalTopics(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topics != 2 {
		t.Fatalf("total topics = %d, want 2", topics)
	}
	posts, err := svc.GetTotalPosts(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posts != 1 {
		t.Fatalf("total posts = %d, want 1", posts)
	}

	if _, err := svc.GetTotalTopics(99); !errors.Is(err, apperr.ErrForumNotFound) {
		t.Fatalf("expected ErrForumNotFound, got %v", err)
	}
}

func TestUpdateRedirectClicks(t *testing.T) {
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Forums: {
			{
				"id": int64(1), "visible": int64(1),
				"redirect": `{"enabled":true,"url":"https://example.com","clicks":7}`,
			},
		},
		cache.ForumClicks: {},
	})
	db.onExec = func(st database.Statement) database.Result {
		if raw, ok := st.Values[0].(string); ok && len(st.Values) == 2 {
			source.tables[cache.Forums][0]["redirect"] = raw
		}
		return database.Result{RowsAffected: 1}
	}
	svc := newForumService(t, provider, db)

	counted, err := svc.UpdateRedirectClicks(context.Background(), 1, "sess-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !counted {
		t.Fatal("first click should be counted")
	}
	// 改 redirect 列 + 落点击明细
	if len(db.execs) != 2 {
		t.Fatalf("expected 2 execs, got %d", len(db.execs))
	}

	var redirect model.Redirect
	raw := source.tables[cache.Forums][0]["redirect"].(string)
	if err := json.Unmarshal([]byte(raw), &redirect); err != nil {
		t.Fatalf("redirect column unparsable: %v", err)
	}
	if redirect.Clicks != 8 {
		t.Fatalf("clicks = %d, want 8", redirect.Clicks)
	}

	// 同一会话窗口内不重复计数
	counted, err = svc.UpdateRedirectClicks(context.Background(), 1, "sess-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counted {
		t.Fatal("repeat click in the window should not be counted")
	}
	if len(db.execs) != 2 {
		t.Fatalf("repeat click must not write, got %d execs", len(db.execs))
	}

	// 不同会话照常计数
	counted, err = svc.UpdateRedirectClicks(context.Background(), 1, "sess-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !counted {
		t.Fatal("a different session should be counted")
	}
	if len(db.execs) != 4 {
		t.Fatalf("expected 4 execs after second session, got %d", len(db.execs))
	}
}

func TestResolveRedirectOnPlainForum(t *testing.T) {
	_, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Forums: {{"id": int64(1), "visible": int64(1)}},
	})
	svc := newForumService(t, provider, db)

	if _, err := svc.ResolveRedirect(1); !errors.Is(err, apperr.ErrNoRedirect) {
		t.Fatalf("expected ErrNoRedirect, got %v", err)
	}
	if _, err := svc.ResolveRedirect(9); !errors.Is(err, apperr.ErrForumNotFound) {
		t.Fatalf("expected ErrForumNotFound, got %v", err)
	}
}
