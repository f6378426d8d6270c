package ticket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type Handler struct {
	createTicket *usecases.CreateTicketUseCase
	updateTicket *usecases.UpdateTicketUseCase
	changeStatus *usecases.ChangeStatusUseCase
	assignTicket *usecases.AssignTicketUseCase
	addComment   *usecases.AddCommentUseCase
	getTicket    *usecases.GetTicketUseCase
	listTickets  *usecases.ListTicketsUseCase
	ticketStats  *usecases.TicketStatsUseCase
	followTicket *usecases.FollowTicketUseCase
	deleteTicket *usecases.DeleteTicketUseCase
	attachFile   *usecases.AttachFileUseCase
}

func NewHandler(
	createTicket *usecases.CreateTicketUseCase,
	updateTicket *usecases.UpdateTicketUseCase,
	changeStatus *usecases.ChangeStatusUseCase,
	assignTicket *usecases.AssignTicketUseCase,
	addComment *usecases.AddCommentUseCase,
	getTicket *usecases.GetTicketUseCase,
	listTickets *usecases.ListTicketsUseCase,
	ticketStats *usecases.TicketStatsUseCase,
	followTicket *usecases.FollowTicketUseCase,
	deleteTicket *usecases.DeleteTicketUseCase,
	attachFile *usecases.AttachFileUseCase,
) *Handler {
	return &Handler{
		createTicket: createTicket,
		updateTicket: updateTicket,
		changeStatus: changeStatus,
		assignTicket: assignTicket,
		addComment:   addComment,
		getTicket:    getTicket,
		listTickets:  listTickets,
		ticketStats:  ticketStats,
		followTicket: followTicket,
		deleteTicket: deleteTicket,
		attachFile:   attachFile,
	}
}

type createTicketRequest struct {
	Title      string     `json:"title" binding:"required,max=200"`
	Details    string     `json:"details" binding:"required,max=10000"`
	Priority   string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CategoryID *uint      `json:"category_id"`
	LocationID *uint      `json:"location_id"`
	DueDate    *time.Time `json:"due_date"`
	Tags       []string   `json:"tags"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}

	var creatorID *uint
	if userID, ok := utils.CurrentUserID(c); ok {
		creatorID = &userID
	}

	result, err := h.createTicket.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Title:      req.Title,
		Details:    req.Details,
		Priority:   req.Priority,
		CategoryID: req.CategoryID,
		CreatorID:  creatorID,
		LocationID: req.LocationID,
		DueDate:    req.DueDate,
		Tags:       req.Tags,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

type updateTicketRequest struct {
	Title         *string    `json:"title" binding:"omitempty,max=200"`
	Details       *string    `json:"details" binding:"omitempty,max=10000"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CategoryID    *uint      `json:"category_id"`
	ClearCategory bool       `json:"clear_category"`
	DueDate       *time.Time `json:"due_date"`
	ClearDueDate  bool       `json:"clear_due_date"`
	Tags          []string   `json:"tags"`
}

func (h *Handler) Update(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.updateTicket.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:      ticketID,
		Title:         req.Title,
		Details:       req.Details,
		Priority:      req.Priority,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		DueDate:       req.DueDate,
		ClearDueDate:  req.ClearDueDate,
		Tags:          req.Tags,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	var actorID *uint
	if userID, ok := utils.CurrentUserID(c); ok {
		actorID = &userID
	}

	result, err := h.changeStatus.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID: ticketID,
		Status:   req.Status,
		ActorID:  actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type assignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

func (h *Handler) Assign(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req assignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	actorID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	err = h.assignTicket.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		ActorID:    actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ticket assigned", nil)
}

type addCommentRequest struct {
	Body string `json:"body" binding:"required,max=20000"`
}

func (h *Handler) AddComment(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	var authorID *uint
	if userID, ok := utils.CurrentUserID(c); ok {
		authorID = &userID
	}

	result, err := h.addComment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID: ticketID,
		AuthorID: authorID,
		Body:     req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

func (h *Handler) Get(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicket.Execute(c.Request.Context(), ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListTicketsQuery{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	query.CategoryID = queryUint(c, "category_id")
	query.CreatorID = queryUint(c, "creator_id")
	query.AssigneeID = queryUint(c, "assignee_id")
	query.LocationID = queryUint(c, "location_id")

	if due := c.Query("due_before"); due != "" {
		t, err := time.Parse(time.RFC3339, due)
		if err != nil {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("due_before must be RFC3339"))
			return
		}
		query.DueBefore = &t
	}

	result, err := h.listTickets.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Tickets, result.Total, pagination.Page, pagination.PageSize)
}

func (h *Handler) Stats(c *gin.Context) {
	locationID := queryUint(c, "location_id")

	result, err := h.ticketStats.Execute(c.Request.Context(), locationID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) Comments(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicket.Execute(c.Request.Context(), ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result.Comments)
}

func (h *Handler) Follow(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.followTicket.Follow(c.Request.Context(), ticketID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ticket followed", nil)
}

func (h *Handler) Unfollow(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.followTicket.Unfollow(c.Request.Context(), ticketID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ticket unfollowed", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicket.Execute(c.Request.Context(), ticketID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ticket deleted", nil)
}

func (h *Handler) Attach(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("file field is required"))
		return
	}

	opened, err := file.Open()
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("failed to read uploaded file"))
		return
	}
	defer opened.Close()

	var authorID *uint
	if userID, ok := utils.CurrentUserID(c); ok {
		authorID = &userID
	}

	result, err := h.attachFile.Execute(c.Request.Context(), usecases.AttachFileCommand{
		TicketID: ticketID,
		AuthorID: authorID,
		Filename: file.Filename,
		Size:     file.Size,
		Content:  opened,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

func queryUint(c *gin.Context, key string) *uint {
	if raw := c.Query(key); raw != "" {
		if n := utils.ParseQueryInt(c, key, 0); n > 0 {
			v := uint(n)
			return &v
		}
	}
	return nil
}
