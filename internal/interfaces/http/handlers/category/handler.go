package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/category/usecases"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type Handler struct {
	categories *usecases.ManageCategoriesUseCase
}

func NewHandler(categories *usecases.ManageCategoriesUseCase) *Handler {
	return &Handler{categories: categories}
}

type createCategoryRequest struct {
	Name              string `json:"name" binding:"required,max=100"`
	DefaultAssigneeID *uint  `json:"default_assignee_id"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.categories.Create(c.Request.Context(), usecases.CreateCategoryCommand{
		Name:              req.Name,
		DefaultAssigneeID: req.DefaultAssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

type updateCategoryRequest struct {
	Name                 *string `json:"name" binding:"omitempty,max=100"`
	DefaultAssigneeID    *uint   `json:"default_assignee_id"`
	ClearDefaultAssignee bool    `json:"clear_default_assignee"`
	Active               *bool   `json:"active"`
}

func (h *Handler) Update(c *gin.Context) {
	categoryID, err := utils.ParseUintParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.categories.Update(c.Request.Context(), usecases.UpdateCategoryCommand{
		CategoryID:           categoryID,
		Name:                 req.Name,
		DefaultAssigneeID:    req.DefaultAssigneeID,
		ClearDefaultAssignee: req.ClearDefaultAssignee,
		Active:               req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) Delete(c *gin.Context) {
	categoryID, err := utils.ParseUintParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.categories.Delete(c.Request.Context(), categoryID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "category deleted", nil)
}

func (h *Handler) Get(c *gin.Context) {
	categoryID, err := utils.ParseUintParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.categories.Get(c.Request.Context(), categoryID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	result, err := h.categories.List(c.Request.Context(), activeOnly)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
