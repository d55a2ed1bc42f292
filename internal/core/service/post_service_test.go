package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-service/internal/core/domain"
	"github.com/inkwell/blog-service/internal/core/ports"
)

type memPostRepo struct {
	posts  map[int64]*domain.Post
	nextID int64
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[int64]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	return &clone
}

func (r *memPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.nextID++
	created := clonePost(post)
	created.ID = r.nextID
	r.posts[created.ID] = clonePost(created)
	return created, nil
}

func (r *memPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *memPostRepo) List(_ context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	matched := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if filter.PublishedOnly && !p.Published {
			continue
		}
		matched = append(matched, clonePost(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memPostRepo) Update(_ context.Context, id int64, update ports.PostUpdate) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	if update.Published != nil {
		p.Published = *update.Published
	}
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (r *memPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type recorderStub struct {
	activities []domain.Activity
}

func (r *recorderStub) Record(activity domain.Activity) {
	r.activities = append(r.activities, activity)
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestPostService_Create_Success(t *testing.T) {
	repo := newMemPostRepo()
	recorder := &recorderStub{}
	svc := NewPostService(repo, recorder, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{
		OwnerID: 1,
		Title:   "Hello",
		Content: "World",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.ID == 0 || post.UserID != 1 {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Published {
		t.Fatalf("published must default to false")
	}
	if len(recorder.activities) != 1 || recorder.activities[0].Action != domain.ActivityCreated {
		t.Fatalf("expected created activity, got %+v", recorder.activities)
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	svc := NewPostService(newMemPostRepo(), nil, zerolog.Nop())

	cases := []struct {
		name  string
		input ports.CreatePostInput
		field string
	}{
		{"missing title", ports.CreatePostInput{OwnerID: 1, Content: "x"}, "title"},
		{"title too long", ports.CreatePostInput{OwnerID: 1, Title: strings.Repeat("a", 256), Content: "x"}, "title"},
		{"missing content", ports.CreatePostInput{OwnerID: 1, Title: "t"}, "content"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields[tc.field]) == 0 {
				t.Fatalf("expected failure on %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestPostService_List_PublishedOnly(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	published, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "pub", Content: "c", Published: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	draft, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "draft", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	page, err := svc.List(context.Background(), ports.ListPostsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != published.ID {
		t.Fatalf("list must contain only the published post, got %+v", page)
	}

	// Direct lookup bypasses the published filter.
	got, err := svc.Get(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("get draft failed: %v", err)
	}
	if got.Published {
		t.Fatalf("expected draft, got %+v", got)
	}
}

func TestPostService_List_Pagination(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	for i := 0; i < 20; i++ {
		if _, err := svc.Create(context.Background(), ports.CreatePostInput{
			OwnerID: 1, Title: "t", Content: "c", Published: true,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	first, err := svc.List(context.Background(), ports.ListPostsInput{Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first.Items) != 15 || first.CurrentPage != 1 || first.LastPage != 2 || first.PerPage != 15 || first.Total != 20 {
		t.Fatalf("unexpected first page: items=%d page=%+v", len(first.Items), first)
	}

	second, err := svc.List(context.Background(), ports.ListPostsInput{Page: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second.Items) != 5 || second.CurrentPage != 2 {
		t.Fatalf("unexpected second page: items=%d page=%+v", len(second.Items), second)
	}
}

func TestPostService_Update_OwnershipEnforced(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), post.ID, ports.UpdatePostInput{
		ActorID: 2,
		Title:   strptr("hijack"),
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), post.ID, ports.UpdatePostInput{
		ActorID: 1,
		Title:   strptr("new title"),
	})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "new title" || updated.Content != "c" {
		t.Fatalf("unexpected post after update: %+v", updated)
	}
}

func TestPostService_Update_EmptyPatchIsNoop(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "t", Content: "c", Published: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), post.ID, ports.UpdatePostInput{ActorID: 1})
	if err != nil {
		t.Fatalf("empty update must succeed: %v", err)
	}
	if updated.Title != "t" || updated.Content != "c" || !updated.Published {
		t.Fatalf("empty update changed fields: %+v", updated)
	}
}

func TestPostService_Update_PartialValidation(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), post.ID, ports.UpdatePostInput{
		ActorID: 1,
		Title:   strptr(""),
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty supplied title, got %v", err)
	}

	// The failed update must not have touched the post.
	got, err := svc.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "t" {
		t.Fatalf("failed validation mutated the post: %+v", got)
	}
}

func TestPostService_Update_PublishRecordsActivity(t *testing.T) {
	repo := newMemPostRepo()
	recorder := &recorderStub{}
	svc := NewPostService(repo, recorder, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), post.ID, ports.UpdatePostInput{
		ActorID:   1,
		Published: boolptr(true),
	}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	last := recorder.activities[len(recorder.activities)-1]
	if last.Action != domain.ActivityPublished {
		t.Fatalf("expected published activity, got %s", last.Action)
	}
}

func TestPostService_Delete_Twice(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{OwnerID: 1, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), post.ID, 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), post.ID, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), post.ID, 1); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), post.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("deleted post still resolvable: %v", err)
	}
}

func TestPost_OwnedBy(t *testing.T) {
	post := &domain.Post{ID: 1, UserID: 7}
	if !post.OwnedBy(7) {
		t.Fatalf("owner must pass the ownership check")
	}
	for _, other := range []int64{0, 1, 6, 8} {
		if post.OwnedBy(other) {
			t.Fatalf("user %d must not pass the ownership check", other)
		}
	}
}
