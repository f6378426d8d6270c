package mappers

import (
	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/infrastructure/persistence/models"
)

type ProcessedMessageMapper struct{}

func NewProcessedMessageMapper() *ProcessedMessageMapper {
	return &ProcessedMessageMapper{}
}

func (m *ProcessedMessageMapper) ToModel(r *inbound.Record) *models.ProcessedMessageModel {
	return &models.ProcessedMessageModel{
		ID:             r.ID(),
		MessageID:      r.MessageID(),
		ConversationID: r.ConversationID(),
		OwnerKey:       r.OwnerKey(),
		SenderEmail:    r.SenderEmail(),
		Subject:        r.Subject(),
		LinkedTicketID: r.LinkedTicketID(),
		IsFollowup:     r.IsFollowup(),
		Suppressed:     r.IsSuppressed(),
		ProcessedAt:    r.ProcessedAt(),
	}
}

func (m *ProcessedMessageMapper) ToDomain(model *models.ProcessedMessageModel) (*inbound.Record, error) {
	return inbound.ReconstructRecord(
		model.ID,
		model.MessageID,
		model.ConversationID,
		model.SenderEmail,
		model.Subject,
		model.LinkedTicketID,
		model.IsFollowup,
		model.Suppressed,
		model.ProcessedAt,
	)
}
