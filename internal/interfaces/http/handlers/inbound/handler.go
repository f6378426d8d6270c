package inbound

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/inbound"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type Handler struct {
	processInbox   *inbound.ProcessInboxUseCase
	reprocess      *inbound.ReprocessMessageUseCase
	missingTickets *inbound.MissingTicketsUseCase
	readInbox      *inbound.ReadInboxUseCase
}

func NewHandler(
	processInbox *inbound.ProcessInboxUseCase,
	reprocess *inbound.ReprocessMessageUseCase,
	missingTickets *inbound.MissingTicketsUseCase,
	readInbox *inbound.ReadInboxUseCase,
) *Handler {
	return &Handler{
		processInbox:   processInbox,
		reprocess:      reprocess,
		missingTickets: missingTickets,
		readInbox:      readInbox,
	}
}

// Process runs one ingestion batch. Per-message failures are reported in
// the batch result; only a mailbox listing failure fails the request.
func (h *Handler) Process(c *gin.Context) {
	result, err := h.processInbox.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "inbox processed", result)
}

func (h *Handler) Reprocess(c *gin.Context) {
	messageID := c.Param("message_id")
	if messageID == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("message_id is required"))
		return
	}

	outcome, err := h.reprocess.Execute(c.Request.Context(), messageID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "message reprocessed", outcome)
}

func (h *Handler) MissingTickets(c *gin.Context) {
	hours := utils.ParseQueryInt(c, "hours", 24)

	missing, err := h.missingTickets.Execute(c.Request.Context(), hours)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"missing": missing, "count": len(missing)})
}

func (h *Handler) Emails(c *gin.Context) {
	limit := utils.ParseQueryInt(c, "limit", 50)
	hours := utils.ParseQueryInt(c, "hours", 24)

	messages, err := h.readInbox.Execute(c.Request.Context(), limit, hours)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"messages": messages, "count": len(messages)})
}
