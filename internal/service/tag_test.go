package service

import (
	"testing"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

func TestListWithCounts(t *testing.T) {
	_, provider, _ := newHarness(t, map[string][]cache.Record{
		cache.Tags: {
			{"id": int64(1), "title": "go"},
			{"id": int64(2), "title": "sql"},
			{"id": int64(3), "title": "unused"},
		},
		cache.Topics: {
			{"id": int64(1), "forumId": int64(1), "tags": `[1,2]`},
			{"id": int64(2), "forumId": int64(1), "tags": `[1]`},
			{"id": int64(3), "forumId": int64(2), "tags": `[2]`},
		},
	})
	svc := NewTagService(repository.NewTagRepository(provider), repository.NewTopicRepository(provider))

	all, err := svc.ListWithCounts(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(all))
	}
	if all[0].Tag.Title != "go" || all[0].Count != 2 {
		t.Fatalf("unexpected first tag: %+v", all[0])
	}
	if all[1].Tag.Title != "sql" || all[1].Count != 2 {
		t.Fatalf("unexpected second tag: %+v", all[1])
	}
	if all[2].Tag.Title != "unused" || all[2].Count != 0 {
		t.Fatalf("unexpected last tag: %+v", all[2])
	}

	// 限定版块时只统计该版块主题
	scoped, err := svc.ListWithCounts(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tc := range scoped {
		switch tc.Tag.Title {
		case "sql":
			if tc.Count != 1 {
				t.Fatalf("sql count = %d, want 1", tc.Count)
			}
		default:
			if tc.Count != 0 {
				t.Fatalf("%s count = %d, want 0", tc.Tag.Title, tc.Count)
			}
		}
	}
}
