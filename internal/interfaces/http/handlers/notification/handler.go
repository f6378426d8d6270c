package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/notification/usecases"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type Handler struct {
	listNotifications *usecases.ListNotificationsUseCase
	markRead          *usecases.MarkReadUseCase
}

func NewHandler(
	listNotifications *usecases.ListNotificationsUseCase,
	markRead *usecases.MarkReadUseCase,
) *Handler {
	return &Handler{
		listNotifications: listNotifications,
		markRead:          markRead,
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	pagination := utils.ParsePagination(c)
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.listNotifications.Execute(c.Request.Context(), userID, unreadOnly, pagination.Page, pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) MarkRead(c *gin.Context) {
	notificationID, err := utils.ParseUintParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.markRead.Execute(c.Request.Context(), notificationID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "notification marked as read", nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	updated, err := h.markRead.ExecuteAll(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "notifications marked as read", gin.H{"updated": updated})
}
