package inbound

import (
	"context"
	"fmt"
	"time"

	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/biztime"
	sharedconfig "helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

type ProcessInboxUseCase struct {
	mailbox  MailboxGateway
	pipeline *Pipeline
	cfg      *sharedconfig.IngestConfig
	log      logger.Interface
}

func NewProcessInboxUseCase(
	mailbox MailboxGateway,
	pipeline *Pipeline,
	cfg *sharedconfig.IngestConfig,
	log logger.Interface,
) *ProcessInboxUseCase {
	return &ProcessInboxUseCase{
		mailbox:  mailbox,
		pipeline: pipeline,
		cfg:      cfg,
		log:      log.Named("process-inbox"),
	}
}

// Execute fetches the lookback window from the mailbox and runs every
// message through the pipeline, oldest first so that the first message of
// a new conversation creates the ticket and the rest become follow-ups. A
// mailbox list failure fails the whole batch; everything after that is
// per-message.
func (uc *ProcessInboxUseCase) Execute(ctx context.Context) (*BatchResult, error) {
	lookback := time.Duration(uc.cfg.LookbackHours) * time.Hour
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	since := biztime.NowUTC().Add(-lookback)

	messages, err := uc.mailbox.ListMessages(ctx, since, uc.cfg.FetchLimit)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list mailbox messages", err.Error())
	}

	result := &BatchResult{}
	// The gateway returns newest first; process in receipt order.
	for i := len(messages) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		outcome := uc.pipeline.ProcessMessage(ctx, &messages[i])
		result.Processed++
		switch outcome.Action {
		case ActionCreated:
			result.TicketsCreated++
		case ActionCommented:
			result.CommentsAdded++
		case ActionSuppressed, ActionSkipped:
			result.Skipped++
		case ActionFailed:
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %s", outcome.MessageID, outcome.Detail))
		}
	}

	uc.log.Infow("inbox batch finished",
		"processed", result.Processed,
		"tickets_created", result.TicketsCreated,
		"comments_added", result.CommentsAdded,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}
