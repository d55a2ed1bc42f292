package ports

import (
	"context"

	"github.com/inkwell/blog-service/internal/core/domain"
)

// ActivityRepository persists post audit entries.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	// ListByPost returns the audit trail for one post, oldest first.
	ListByPost(ctx context.Context, postID int64) ([]*domain.Activity, error)
}
