package handler

import "github.com/inkwell/blog-service/internal/core/domain"

type createPostRequest struct {
	Title     string `json:"title"   validate:"required,max=255"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

// updatePostRequest is the partial-update form: nil means "field not supplied".
// Supplied fields are validated by the service against the create rules.
type updatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type postResponse struct {
	Message string       `json:"message"`
	Post    *domain.Post `json:"post"`
}

// listPostsResponse mirrors the paginator envelope the original frontend
// consumes: data + current_page/last_page/per_page/total.
type listPostsResponse struct {
	Data        []*domain.Post `json:"data"`
	CurrentPage int            `json:"current_page"`
	LastPage    int            `json:"last_page"`
	PerPage     int            `json:"per_page"`
	Total       int64          `json:"total"`
}
