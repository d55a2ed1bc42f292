package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-service/internal/api/metrics"
	"github.com/inkwell/blog-service/internal/core/domain"
	"github.com/inkwell/blog-service/internal/core/ports"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// ActivityRecorder abstracts the async audit trail (queue dispatcher).
type ActivityRecorder interface {
	Record(activity domain.Activity)
}

// noopRecorder is used when no audit trail is wired (tests).
type noopRecorder struct{}

func (noopRecorder) Record(domain.Activity) {}

// PostService implements the post use cases: public feed, direct lookup,
// and owner-gated mutations.
type PostService struct {
	posts    ports.PostRepository
	recorder ActivityRecorder
	log      zerolog.Logger
}

func NewPostService(posts ports.PostRepository, recorder ActivityRecorder, log zerolog.Logger) *PostService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &PostService{posts: posts, recorder: recorder, log: log}
}

// List returns the public feed: published posts only, newest first.
func (s *PostService) List(ctx context.Context, input ports.ListPostsInput) (*ports.PostPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, total, err := s.posts.List(ctx, ports.ListPostsFilter{
		PublishedOnly: true,
		Page:          page,
		PerPage:       perPage,
	})
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &ports.PostPage{
		Items:       items,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}, nil
}

// Get returns a post by id. Unlike List, no published filter is applied:
// direct links resolve drafts too.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	verr := domain.NewValidationError()
	validateTitle(verr, input.Title)
	validateContent(verr, input.Content)
	if !verr.Empty() {
		return nil, verr
	}

	now := time.Now().UTC()
	post := &domain.Post{
		UserID:    input.OwnerID,
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", input.OwnerID).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.WithLabelValues(publishedLabel(created.Published)).Inc()
	s.recorder.Record(domain.Activity{
		PostID:    created.ID,
		ActorID:   input.OwnerID,
		Action:    domain.ActivityCreated,
		Timestamp: now,
	})
	s.log.Info().Int64("post_id", created.ID).Int64("user_id", input.OwnerID).Msg("post created")
	return created, nil
}

// Update applies a partial update after the ownership check. Only supplied
// fields are validated; an empty update is a successful no-op.
func (s *PostService) Update(ctx context.Context, id int64, input ports.UpdatePostInput) (*domain.Post, error) {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.OwnedBy(input.ActorID) {
		return nil, domain.ErrForbidden
	}

	verr := domain.NewValidationError()
	if input.Title != nil {
		validateTitle(verr, *input.Title)
	}
	if input.Content != nil {
		validateContent(verr, *input.Content)
	}
	if !verr.Empty() {
		return nil, verr
	}

	updated, err := s.posts.Update(ctx, id, ports.PostUpdate{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	})
	if err != nil {
		return nil, err
	}

	action := domain.ActivityUpdated
	if !existing.Published && updated.Published {
		action = domain.ActivityPublished
	}
	metrics.PostsUpdatedTotal.Inc()
	s.recorder.Record(domain.Activity{
		PostID:    updated.ID,
		ActorID:   input.ActorID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
	return updated, nil
}

// Delete removes the post permanently after the ownership check.
func (s *PostService) Delete(ctx context.Context, id int64, actorID int64) error {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.OwnedBy(actorID) {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	s.recorder.Record(domain.Activity{
		PostID:    id,
		ActorID:   actorID,
		Action:    domain.ActivityDeleted,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Int64("post_id", id).Int64("user_id", actorID).Msg("post deleted")
	return nil
}

func validateTitle(verr *domain.ValidationError, title string) {
	if strings.TrimSpace(title) == "" {
		verr.Add("title", "the title field is required")
	} else if len(title) > domain.TitleMaxLen {
		verr.Add("title", "the title may not be greater than 255 characters")
	}
}

func validateContent(verr *domain.ValidationError, content string) {
	if strings.TrimSpace(content) == "" {
		verr.Add("content", "the content field is required")
	}
}

func publishedLabel(published bool) string {
	if published {
		return "published"
	}
	return "draft"
}
