package inbound

import (
	"context"
	"errors"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/shared/logger"
)

type ReprocessMessageUseCase struct {
	mailbox  MailboxGateway
	records  inbound.RecordRepository
	pipeline *Pipeline
	log      logger.Interface
}

func NewReprocessMessageUseCase(
	mailbox MailboxGateway,
	records inbound.RecordRepository,
	pipeline *Pipeline,
	log logger.Interface,
) *ReprocessMessageUseCase {
	return &ReprocessMessageUseCase{
		mailbox:  mailbox,
		records:  records,
		pipeline: pipeline,
		log:      log.Named("reprocess-message"),
	}
}

// Execute pushes a single message through the pipeline again. Idempotent: a
// message that already resolved reports its existing outcome; an unresolved
// leftover reservation is cleared first so the pipeline can claim it fresh.
func (uc *ReprocessMessageUseCase) Execute(ctx context.Context, messageID string) (MessageOutcome, error) {
	existing, err := uc.records.GetByMessageID(ctx, messageID)
	if err != nil && !errors.Is(err, inbound.ErrRecordNotFound) {
		return MessageOutcome{}, err
	}

	if existing != nil {
		if existing.IsResolved() {
			return uc.resolvedOutcome(existing), nil
		}
		// A reservation with no resolution is debris from a crashed run.
		if err := uc.records.Delete(ctx, messageID); err != nil && !errors.Is(err, inbound.ErrRecordNotFound) {
			return MessageOutcome{}, err
		}
		uc.log.Infow("cleared stale reservation", "message_id", messageID)
	}

	msg, err := uc.mailbox.GetMessage(ctx, messageID)
	if err != nil {
		return MessageOutcome{}, err
	}

	return uc.pipeline.ProcessMessage(ctx, msg), nil
}

func (uc *ReprocessMessageUseCase) resolvedOutcome(rec *inbound.Record) MessageOutcome {
	outcome := MessageOutcome{MessageID: rec.MessageID(), Action: ActionSkipped, Detail: "already processed"}
	if rec.IsSuppressed() {
		outcome.Action = ActionSuppressed
		outcome.Detail = ""
		return outcome
	}
	if rec.LinkedTicketID() != nil {
		outcome.TicketID = *rec.LinkedTicketID()
	}
	return outcome
}
