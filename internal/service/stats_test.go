package service

import (
	"testing"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

func TestGetBoardStats(t *testing.T) {
	_, provider, _ := newHarness(t, map[string][]cache.Record{
		cache.Topics: {{"id": int64(1)}, {"id": int64(2)}},
		cache.Posts:  {{"id": int64(1)}, {"id": int64(2)}, {"id": int64(3)}},
		cache.Members: {
			{"id": int64(5), "username": "old", "joined": int64(1000)},
			{"id": int64(6), "username": "new", "joined": int64(2000)},
		},
		cache.Registry: {
			{"id": int64(1), "name": "mostOnline", "value": int64(12)},
		},
	})
	members := repository.NewMemberRepository(provider, repository.NewGroupRepository(provider))
	svc := NewStatsService(provider, members)

	stats, err := svc.GetBoardStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalTopics != 2 || stats.TotalPosts != 3 || stats.TotalMembers != 2 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.NewestMember != "new" {
		t.Fatalf("newest member = %q, want new", stats.NewestMember)
	}
	if stats.MostOnline != 12 {
		t.Fatalf("mostOnline = %d, want 12", stats.MostOnline)
	}
}

func TestGetBoardStatsEmptyBoard(t *testing.T) {
	_, provider, _ := newHarness(t, nil)
	members := repository.NewMemberRepository(provider, repository.NewGroupRepository(provider))
	svc := NewStatsService(provider, members)

	stats, err := svc.GetBoardStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalTopics != 0 || stats.NewestMember != "" || stats.MostOnline != 0 {
		t.Fatalf("unexpected stats for empty board: %+v", stats)
	}
}
