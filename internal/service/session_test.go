package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

func TestTouchRollsExistingSession(t *testing.T) {
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Sessions: {
			{"id": int64(7), "memberId": int64(5), "location": "/old", "lastClick": int64(1000)},
		},
	})
	db.onExec = func(st database.Statement) database.Result {
		if !strings.HasPrefix(st.Query, "INSERT INTO sessions") {
			t.Fatalf("unexpected statement: %s", st.Query)
		}
		if !strings.HasSuffix(st.Query, ";") {
			t.Fatal("upsert statement should end with on duplicate key clause")
		}
		source.tables[cache.Sessions][0]["location"] = "/forum/1"
		source.tables[cache.Sessions][0]["lastClick"] = time.Now().UnixMilli()
		return database.Result{RowsAffected: 2}
	}
	sessions := repository.NewSessionRepository(provider)
	svc := NewSessionService(provider, db, testStmt, sessions, time.Hour)

	session, err := svc.Touch(context.Background(), TouchInput{
		SessionID: 7,
		MemberID:  5,
		Location:  "/forum/1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil || session.ID != 7 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Location != "/forum/1" {
		t.Fatalf("location = %q, want /forum/1", session.Location)
	}
}

func TestPruneExpired(t *testing.T) {
	now := time.Now()
	source, provider, db := newHarness(t, map[string][]cache.Record{
		cache.Sessions: {
			{"id": int64(1), "expires": now.Add(time.Hour).UnixMilli()},
			{"id": int64(2), "expires": now.Add(-time.Hour).UnixMilli()},
		},
	})
	db.onExec = func(st database.Statement) database.Result {
		source.tables[cache.Sessions] = source.tables[cache.Sessions][:1]
		return database.Result{RowsAffected: 1}
	}
	sessions := repository.NewSessionRepository(provider)
	svc := NewSessionService(provider, db, testStmt, sessions, time.Hour)

	pruned, err := svc.PruneExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pruned {
		t.Fatal("expected a prune to happen")
	}
	if got := len(provider.Get(cache.Sessions)); got != 1 {
		t.Fatalf("expected 1 live session after prune, got %d", got)
	}

	// 没有过期会话时不产生删除
	pruned, err = svc.PruneExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pruned {
		t.Fatal("no expired sessions, prune should be a no-op")
	}
	if len(db.execs) != 1 {
		t.Fatalf("no-op prune must not write, got %d execs", len(db.execs))
	}
}
