package handler

import "github.com/inkwell/blog-service/internal/core/ports"

// toListResponse shapes a service page into the paginator envelope.
func toListResponse(page *ports.PostPage) listPostsResponse {
	return listPostsResponse{
		Data:        page.Items,
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
	}
}
