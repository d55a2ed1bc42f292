package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-service/internal/core/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []domain.Activity
	done    chan struct{}
	want    int
}

func newRecordingRepo(want int) *recordingRepo {
	return &recordingRepo{done: make(chan struct{}), want: want}
}

func (r *recordingRepo) Insert(_ context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *activity)
	if len(r.entries) == r.want {
		close(r.done)
	}
	return nil
}

func (r *recordingRepo) ListByPost(_ context.Context, postID int64) ([]*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Activity
	for i := range r.entries {
		if r.entries[i].PostID == postID {
			entry := r.entries[i]
			out = append(out, &entry)
		}
	}
	return out, nil
}

func (r *recordingRepo) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d entries", r.want)
	}
}

func TestDispatcher_PersistsAllEntries(t *testing.T) {
	repo := newRecordingRepo(6)
	d := NewDispatcher(3, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := int64(1); i <= 6; i++ {
		d.Record(domain.Activity{
			PostID:    i,
			ActorID:   1,
			Action:    domain.ActivityCreated,
			Timestamp: time.Now().UTC(),
		})
	}

	repo.wait(t)
}

func TestDispatcher_PerPostOrdering(t *testing.T) {
	const postID = int64(42)
	actions := []domain.ActivityAction{
		domain.ActivityCreated,
		domain.ActivityUpdated,
		domain.ActivityPublished,
		domain.ActivityDeleted,
	}

	repo := newRecordingRepo(len(actions))
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, action := range actions {
		d.Record(domain.Activity{
			PostID:    postID,
			ActorID:   1,
			Action:    action,
			Timestamp: time.Now().UTC(),
		})
	}

	repo.wait(t)

	trail, err := repo.ListByPost(context.Background(), postID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(trail) != len(actions) {
		t.Fatalf("expected %d entries, got %d", len(actions), len(trail))
	}
	for i, entry := range trail {
		if entry.Action != actions[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, actions[i], entry.Action)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingRepo(0), zerolog.Nop())

	for _, id := range []int64{1, 7, 42, 1000} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for post %d is unstable: %d vs %d", id, first, got)
			}
		}
	}
}
