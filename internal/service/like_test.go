package service

import (
	"context"
	"testing"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

func TestLikeContentIdempotent(t *testing.T) {
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.LikedContent: {},
	})
	// 插入语句落表，刷新后缓存可见
	db.onExec = func(st database.Statement) database.Result {
		source.tables[cache.LikedContent] = append(source.tables[cache.LikedContent], cache.Record{
			"id": int64(1), "contentType": "topic", "contentId": int64(9), "memberId": int64(5),
		})
		return database.Result{InsertID: 1, RowsAffected: 1}
	}
	svc := NewLikeService(provider, db, testStmt)

	changed, err := svc.LikeContent(context.Background(), model.ContentTopic, 9, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("first like should report a change")
	}
	if !svc.HasLikedContent(model.ContentTopic, 9, 5) {
		t.Fatal("like should be visible after awaited refresh")
	}
	if svc.GetTotalLikes(model.ContentTopic, 9) != 1 {
		t.Fatal("expected 1 total like")
	}

	changed, err = svc.LikeContent(context.Background(), model.ContentTopic, 9, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatal("second like should be a no-op")
	}
	if len(db.execs) != 1 {
		t.Fatalf("second like must not write, got %d execs", len(db.execs))
	}
}

func TestUnlikeContentWhenNotLiked(t *testing.T) {
	_, provider, db := newHarness(t, nil)
	svc := NewLikeService(provider, db, testStmt)

	changed, err := svc.UnlikeContent(context.Background(), model.ContentPost, 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatal("unlike without prior like should be a no-op")
	}
	if len(db.execs) != 0 {
		t.Fatalf("no-op unlike must not write, got %d execs", len(db.execs))
	}
}

func TestUnlikeContentRemovesLike(t *testing.T) {
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.LikedContent: {
			{"id": int64(1), "contentType": "topic", "contentId": int64(9), "memberId": int64(5)},
		},
	})
	db.onExec = func(st database.Statement) database.Result {
		source.tables[cache.LikedContent] = []cache.Record{}
		return database.Result{RowsAffected: 1}
	}
	svc := NewLikeService(provider, db, testStmt)

	changed, err := svc.UnlikeContent(context.Background(), model.ContentTopic, 9, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("unlike should report a change")
	}
	if svc.HasLikedContent(model.ContentTopic, 9, 5) {
		t.Fatal("like should be gone after refresh")
	}
}

func TestFollowThenIsFollowing(t *testing.T) {
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.FollowedContent: {},
	})
	db.onExec = func(st database.Statement) database.Result {
		source.tables[cache.FollowedContent] = append(source.tables[cache.FollowedContent], cache.Record{
			"id": int64(1), "contentType": "post", "contentId": int64(4), "memberId": int64(6),
		})
		return database.Result{InsertID: 1, RowsAffected: 1}
	}
	svc := NewFollowService(provider, db, testStmt)

	changed, err := svc.FollowContent(context.Background(), model.ContentPost, 4, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("follow should report a change")
	}
	// 返回时刷新已完成，读侧立即可见
	if !svc.IsFollowingContent(model.ContentPost, 4, 6) {
		t.Fatal("follow should be visible immediately after return")
	}
	if svc.GetTotalFollowers(model.ContentPost, 4) != 1 {
		t.Fatal("expected 1 follower")
	}
}
