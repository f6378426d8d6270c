package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/project/usecases"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type Handler struct {
	projects *usecases.ManageProjectsUseCase
}

func NewHandler(projects *usecases.ManageProjectsUseCase) *Handler {
	return &Handler{projects: projects}
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	result, err := h.projects.Create(c.Request.Context(), req.Name, req.Description, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

type updateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

func (h *Handler) Update(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.projects.Update(c.Request.Context(), projectID, req.Name, req.Description)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) Archive(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.projects.Archive(c.Request.Context(), projectID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "project archived", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "project deleted", nil)
}

func (h *Handler) Get(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.projects.Get(c.Request.Context(), projectID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	activeOnly := c.Query("active_only") == "true"

	result, err := h.projects.List(c.Request.Context(), activeOnly, pagination.Page, pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Projects, result.Total, pagination.Page, pagination.PageSize)
}

type memberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *Handler) AddMember(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	actorID, _ := utils.CurrentUserID(c)
	if err := h.projects.AddMember(c.Request.Context(), projectID, req.UserID, actorID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "member added", nil)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), projectID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "member removed", nil)
}

type tagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *Handler) AddTag(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := h.projects.AddTag(c.Request.Context(), projectID, req.Name); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "tag added", nil)
}

func (h *Handler) RemoveTag(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	name := c.Param("name")

	if err := h.projects.RemoveTag(c.Request.Context(), projectID, name); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "tag removed", nil)
}

type linkTicketRequest struct {
	TicketID uint `json:"ticket_id" binding:"required"`
}

func (h *Handler) LinkTicket(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req linkTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	actorID, _ := utils.CurrentUserID(c)
	if err := h.projects.LinkTicket(c.Request.Context(), projectID, req.TicketID, actorID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ticket linked", nil)
}

func (h *Handler) UnlinkTicket(c *gin.Context) {
	projectID, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := utils.ParseUintParam(c, "ticket_id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.projects.UnlinkTicket(c.Request.Context(), projectID, ticketID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ticket unlinked", nil)
}
