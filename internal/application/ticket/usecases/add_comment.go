package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID   uint
	AuthorID   *uint
	AuthorName string
	Body       string
}

type AddCommentUseCase struct {
	tickets   ticket.TicketRepository
	comments  ticket.CommentRepository
	followups ticket.FollowUpRepository
	notifier  Notifier
	log       logger.Interface
}

func NewAddCommentUseCase(
	tickets ticket.TicketRepository,
	comments ticket.CommentRepository,
	followups ticket.FollowUpRepository,
	notifier Notifier,
	log logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		tickets:   tickets,
		comments:  comments,
		followups: followups,
		notifier:  notifier,
		log:       log.Named("add-comment"),
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*CommentResult, error) {
	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(cmd.TicketID, cmd.AuthorID, cmd.AuthorName, cmd.Body)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	uc.log.Infow("comment added", "ticket_id", cmd.TicketID, "comment_id", comment.ID())
	uc.notifier.NewComment(ctx, t, comment, uc.commentRecipients(ctx, t, cmd.AuthorID))

	return NewCommentResult(comment), nil
}

// commentRecipients is the follower set minus the comment author.
func (uc *AddCommentUseCase) commentRecipients(ctx context.Context, t *ticket.Ticket, authorID *uint) []uint {
	followers, err := uc.followups.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.log.Warnw("failed to load followers for notification", "ticket_id", t.ID(), "error", err)
		return nil
	}

	recipients := make([]uint, 0, len(followers))
	for _, f := range followers {
		if authorID != nil && f.UserID() == *authorID {
			continue
		}
		recipients = append(recipients, f.UserID())
	}
	return recipients
}
