package inbound

import (
	"context"
	"time"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/shared/biztime"
)

// MissingTicketsUseCase is the diagnostic view over the ledger: messages
// that were claimed but never produced a ticket and whose conversation
// resolved nowhere else. A non-empty result means the pipeline dropped
// something.
type MissingTicketsUseCase struct {
	records inbound.RecordRepository
}

func NewMissingTicketsUseCase(records inbound.RecordRepository) *MissingTicketsUseCase {
	return &MissingTicketsUseCase{records: records}
}

func (uc *MissingTicketsUseCase) Execute(ctx context.Context, hours int) ([]MissingTicket, error) {
	if hours <= 0 {
		hours = 24
	}
	since := biztime.NowUTC().Add(-time.Duration(hours) * time.Hour)

	records, err := uc.records.ListUnresolved(ctx, since)
	if err != nil {
		return nil, err
	}

	missing := make([]MissingTicket, 0, len(records))
	for _, r := range records {
		missing = append(missing, MissingTicket{
			MessageID:      r.MessageID(),
			ConversationID: r.ConversationID(),
			SenderEmail:    r.SenderEmail(),
			Subject:        r.Subject(),
			ProcessedAt:    r.ProcessedAt(),
		})
	}
	return missing, nil
}
