package ports

import (
	"context"

	"github.com/inkwell/blog-service/internal/core/domain"
)

// CreatePostInput carries all data needed to create a post for its owner.
type CreatePostInput struct {
	OwnerID   int64
	Title     string
	Content   string
	Published bool
}

// UpdatePostInput is the partial-update form: nil means "not supplied".
type UpdatePostInput struct {
	ActorID   int64
	Title     *string
	Content   *string
	Published *bool
}

// ListPostsInput carries pagination parameters for the public feed.
type ListPostsInput struct {
	Page    int
	PerPage int
}

// PostPage is the paginated listing result.
type PostPage struct {
	Items       []*domain.Post
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int64
}

// PostService defines the post use cases.
type PostService interface {
	// List returns the public feed: published posts only, newest first.
	List(ctx context.Context, input ListPostsInput) (*PostPage, error)
	// Get returns a post by id regardless of published state.
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	// Update requires the actor to own the post; returns domain.ErrForbidden otherwise.
	Update(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error)
	// Delete requires ownership. Deletion is immediate and irreversible.
	Delete(ctx context.Context, id int64, actorID int64) error
}
