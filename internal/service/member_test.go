package service

import (
	"context"
	"testing"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

func newMemberService(provider cache.Provider, db *fakeDB) *MemberService {
	members := repository.NewMemberRepository(provider, repository.NewGroupRepository(provider))
	sessions := repository.NewSessionRepository(provider)
	return NewMemberService(provider, db, testStmt, members, sessions)
}

func TestResolveVisitor(t *testing.T) {
	future := time.Now().Add(time.Hour).UnixMilli()
	past := time.Now().Add(-time.Hour).UnixMilli()

	_, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Sessions: {
			{"id": int64(1), "memberId": int64(5), "expires": future},
			{"id": int64(2), "memberId": int64(5), "expires": past},
		},
		cache.Members: {
			{"id": int64(5), "username": "sam"},
		},
	})
	svc := newMemberService(provider, db)

	visitor, err := svc.ResolveVisitor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visitor.IsGuest() {
		t.Fatal("live session should resolve to member")
	}
	if visitor.Member.Username != "sam" || visitor.Session == nil {
		t.Fatalf("unexpected visitor: %+v", visitor)
	}

	// 过期会话按访客处理
	visitor, err = svc.ResolveVisitor(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !visitor.IsGuest() {
		t.Fatal("expired session should resolve to guest")
	}

	// 未知会话同样按访客处理
	visitor, err = svc.ResolveVisitor(999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !visitor.IsGuest() {
		t.Fatal("unknown session should resolve to guest")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	_, provider, db := newHarness(t, nil)
	svc := newMemberService(provider, db)

	hash, err := svc.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.CheckPassword(hash, "hunter2") {
		t.Fatal("correct password should verify")
	}
	if svc.CheckPassword(hash, "wrong") {
		t.Fatal("wrong password should not verify")
	}
}

func TestRecordProfileVisitSkipsGuestAndSelf(t *testing.T) {
	_, provider, db := newHarness(t, nil)
	svc := newMemberService(provider, db)

	if err := svc.RecordProfileVisit(context.Background(), 5, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RecordProfileVisit(context.Background(), 5, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.execs) != 0 {
		t.Fatalf("guest/self visits must not write, got %d execs", len(db.execs))
	}
}

func TestRecordProfileVisitWrites(t *testing.T) {
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.ProfileVisitors: {},
		cache.Members: {
			{"id": int64(6), "username": "kim"},
		},
	})
	db.onExec = func(st database.Statement) database.Result {
		source.tables[cache.ProfileVisitors] = append(source.tables[cache.ProfileVisitors], cache.Record{
			"id": int64(1), "profileId": int64(5), "visitorId": int64(6),
			"visitedAt": time.Now().UnixMilli(),
		})
		return database.Result{RowsAffected: 1}
	}
	svc := newMemberService(provider, db)

	if err := svc.RecordProfileVisit(context.Background(), 5, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visitors, err := svc.GetRecentProfileVisitors(5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visitors) != 1 || visitors[0].Member.Username != "kim" {
		t.Fatalf("unexpected visitors: %+v", visitors)
	}
}

func TestGetRecentProfileVisitorsOrderAndLimit(t *testing.T) {
	_, provider, db := newHarness(t, map[string][]cache.Record{
		cache.ProfileVisitors: {
			{"id": int64(1), "profileId": int64(5), "visitorId": int64(6), "visitedAt": int64(1000)},
			{"id": int64(2), "profileId": int64(5), "visitorId": int64(7), "visitedAt": int64(3000)},
			{"id": int64(3), "profileId": int64(5), "visitorId": int64(8), "visitedAt": int64(2000)},
			{"id": int64(4), "profileId": int64(9), "visitorId": int64(6), "visitedAt": int64(9000)},
		},
		cache.Members: {
			{"id": int64(6), "username": "a"},
			{"id": int64(7), "username": "b"},
			{"id": int64(8), "username": "c"},
		},
	})
	svc := newMemberService(provider, db)

	visitors, err := svc.GetRecentProfileVisitors(5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visitors) != 2 {
		t.Fatalf("expected 2 visitors, got %d", len(visitors))
	}
	if visitors[0].Member.Username != "b" || visitors[1].Member.Username != "c" {
		t.Fatalf("unexpected order: %s, %s", visitors[0].Member.Username, visitors[1].Member.Username)
	}
}
