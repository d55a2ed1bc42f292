package ports

import (
	"context"

	"github.com/inkwell/blog-service/internal/core/domain"
)

// ListPostsFilter carries query parameters for listing posts.
type ListPostsFilter struct {
	// PublishedOnly restricts the listing to the public feed.
	PublishedOnly bool
	Page          int // 1-based
	PerPage       int
}

// PostUpdate is a partial update: nil fields are left unchanged.
type PostUpdate struct {
	Title     *string
	Content   *string
	Published *bool
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// Create persists a new post and assigns its integer id.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// FindByID retrieves a post regardless of published state.
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// List returns a page of posts ordered by creation time descending,
	// together with the total count matching the filter.
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	// Update applies the non-nil fields of update and returns the new state.
	Update(ctx context.Context, id int64, update PostUpdate) (*domain.Post, error)
	// Delete removes the post permanently.
	Delete(ctx context.Context, id int64) error
}
