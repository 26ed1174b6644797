package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

// CategoryHandler serves GET /api/categories.
type CategoryHandler struct {
	CategoryRepo *repository.CategoryRepo
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryRepo *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{CategoryRepo: categoryRepo}
}

// CategoryResponse is the plain category projection.
type CategoryResponse struct {
	CategoryID uint64 `json:"CategoryId"`
	Name       string `json:"Name"`
}

// List handles GET /api/categories, ordered alphabetically by name.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.CategoryRepo.ListAll(c.Request().Context())
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryResponse{CategoryID: cat.ID, Name: cat.Name})
	}
	return listOK(c, len(out), out)
}
