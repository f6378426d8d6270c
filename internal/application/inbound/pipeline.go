package inbound

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helpdesk/internal/domain/category"
	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	sharedconfig "helpdesk/internal/shared/config"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// errConversationTaken redirects a message from the ticket path to the
// comment path when another record wins the owner key.
var errConversationTaken = errors.New("conversation ticket created elsewhere")

// Pipeline is the single-message ingestion engine shared by the batch run
// and the reprocess endpoint.
//
// Invariants it maintains:
//   - reservation before work: the ledger row is inserted before anything
//     expensive happens, so a crash leaves at most an unresolved reservation;
//   - one ticket per conversation: checked before the transaction and
//     re-checked by the owner-key unique index inside it;
//   - per-message isolation: a failure rolls back the message's writes,
//     removes its reservation when no ticket got attached, and leaves the
//     rest of the batch alone.
type Pipeline struct {
	records     inbound.RecordRepository
	tickets     ticket.TicketRepository
	comments    ticket.CommentRepository
	assignments ticket.AssignmentRepository
	categories  category.Repository
	identity    IdentityGateway
	refiner     *Refiner
	notifier    Notifier
	txManager   TransactionManager
	cfg         *sharedconfig.IngestConfig
	log         logger.Interface
}

func NewPipeline(
	records inbound.RecordRepository,
	tickets ticket.TicketRepository,
	comments ticket.CommentRepository,
	assignments ticket.AssignmentRepository,
	categories category.Repository,
	identity IdentityGateway,
	refiner *Refiner,
	notifier Notifier,
	txManager TransactionManager,
	cfg *sharedconfig.IngestConfig,
	log logger.Interface,
) *Pipeline {
	return &Pipeline{
		records:     records,
		tickets:     tickets,
		comments:    comments,
		assignments: assignments,
		categories:  categories,
		identity:    identity,
		refiner:     refiner,
		notifier:    notifier,
		txManager:   txManager,
		cfg:         cfg,
		log:         log.Named("pipeline"),
	}
}

// ProcessMessage runs one message through the full pipeline and reports the
// outcome. It never returns an error; failures are encoded in the outcome
// so batch callers can keep going.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg *inbound.Message) MessageOutcome {
	if msg.MessageID == "" || msg.ConversationID == "" {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionSkipped, Detail: "missing message or conversation id"}
	}

	rec, err := inbound.NewReservation(msg.MessageID, msg.ConversationID, msg.SenderEmail, msg.Subject)
	if err != nil {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}

	if err := p.records.Reserve(ctx, rec); err != nil {
		if errors.Is(err, inbound.ErrDuplicateMessage) {
			return MessageOutcome{MessageID: msg.MessageID, Action: ActionSkipped, Detail: "already processed"}
		}
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}

	outcome := p.resolve(ctx, msg, rec)
	if outcome.Action == ActionFailed {
		p.rollbackReservation(ctx, msg.MessageID)
	}
	return outcome
}

// rollbackReservation removes the ledger row after a failure so the next
// run retries the message. The stored row is the source of truth here: an
// in-memory record may carry mutations from a rolled-back transaction.
func (p *Pipeline) rollbackReservation(ctx context.Context, messageID string) {
	stored, err := p.records.GetByMessageID(ctx, messageID)
	if err != nil {
		if !errors.Is(err, inbound.ErrRecordNotFound) {
			p.log.Errorw("failed to inspect reservation for rollback", "message_id", messageID, "error", err)
		}
		return
	}
	if stored.IsResolved() {
		return
	}
	if err := p.records.Delete(ctx, messageID); err != nil && !errors.Is(err, inbound.ErrRecordNotFound) {
		p.log.Errorw("failed to roll back reservation", "message_id", messageID, "error", err)
	}
}

func (p *Pipeline) resolve(ctx context.Context, msg *inbound.Message, rec *inbound.Record) MessageOutcome {
	if p.isSystemNotification(msg.Subject) {
		if err := rec.Suppress(); err != nil {
			return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
		}
		if err := p.records.Update(ctx, rec); err != nil {
			return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
		}
		p.log.Infow("suppressed system notification", "message_id", msg.MessageID, "subject", msg.Subject)
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionSuppressed}
	}

	owner, err := p.records.ConversationOwner(ctx, msg.ConversationID)
	if err != nil && !errors.Is(err, inbound.ErrRecordNotFound) {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}
	if owner != nil {
		return p.appendComment(ctx, msg, rec, *owner.LinkedTicketID())
	}

	outcome := p.createTicket(ctx, msg, rec)
	if outcome.Action == ActionFailed && outcome.Detail == errConversationTaken.Error() {
		// Lost the owner-key race; the winning record has the ticket. The
		// reservation is re-read because the failed transaction left stale
		// mutations on the in-memory record.
		winner, err := p.records.ConversationOwner(ctx, msg.ConversationID)
		if err != nil {
			return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
		}
		fresh, err := p.records.GetByMessageID(ctx, msg.MessageID)
		if err != nil {
			return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
		}
		return p.appendComment(ctx, msg, fresh, *winner.LinkedTicketID())
	}
	return outcome
}

// isSystemNotification reports whether the subject matches a configured
// outbound-notification prefix. Without this the importer would ingest its
// own mail and loop.
func (p *Pipeline) isSystemNotification(subject string) bool {
	trimmed := strings.TrimSpace(subject)
	for _, prefix := range p.cfg.SuppressedPrefixes {
		if len(prefix) > 0 && strings.HasPrefix(strings.ToLower(trimmed), strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func (p *Pipeline) extractBody(msg *inbound.Message) string {
	extracted := ExtractText(msg.Body())
	if extracted == "" {
		extracted = strings.TrimSpace(msg.Subject)
	}
	if extracted == "" {
		extracted = "(no content provided)"
	}
	return extracted
}

// resolveSender maps the sender address to a directory user. Lookup
// failures degrade to an anonymous author; they never abort the message.
func (p *Pipeline) resolveSender(ctx context.Context, msg *inbound.Message) (authorID *uint, authorName string) {
	authorName = msg.SenderName
	if authorName == "" {
		authorName = msg.SenderEmail
	}
	if msg.SenderEmail == "" {
		return nil, authorName
	}

	userID, displayName, err := p.identity.ResolveByEmail(ctx, msg.SenderEmail)
	if err != nil {
		p.log.Debugw("sender not resolved in directory", "email", msg.SenderEmail, "error", err)
		return nil, authorName
	}
	if displayName != "" {
		authorName = displayName
	}
	return userID, authorName
}

func (p *Pipeline) appendComment(ctx context.Context, msg *inbound.Message, rec *inbound.Record, ticketID uint) MessageOutcome {
	body := p.extractBody(msg)
	authorID, authorName := p.resolveSender(ctx, msg)

	duplicate, err := p.comments.Exists(ctx, ticketID, authorID, body)
	if err != nil {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}

	var comment *ticket.Comment
	err = p.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if !duplicate {
			comment, err = ticket.NewComment(ticketID, authorID, authorName, body)
			if err != nil {
				return err
			}
			if err := p.comments.Save(txCtx, comment); err != nil {
				return err
			}
		}
		if err := rec.ResolveAsComment(ticketID); err != nil {
			return err
		}
		return p.records.Update(txCtx, rec)
	})
	if err != nil {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}

	if duplicate {
		p.log.Infow("duplicate follow-up suppressed", "message_id", msg.MessageID, "ticket_id", ticketID)
		return MessageOutcome{MessageID: msg.MessageID, TicketID: ticketID, Action: ActionSkipped, Detail: "duplicate comment"}
	}

	p.log.Infow("follow-up appended", "message_id", msg.MessageID, "ticket_id", ticketID)
	p.notifyFollowup(ctx, ticketID, comment, authorID)
	return MessageOutcome{MessageID: msg.MessageID, TicketID: ticketID, Action: ActionCommented}
}

// notifyFollowup tells the current assignee about the new comment.
func (p *Pipeline) notifyFollowup(ctx context.Context, ticketID uint, comment *ticket.Comment, authorID *uint) {
	t, err := p.tickets.GetByID(ctx, ticketID)
	if err != nil {
		p.log.Warnw("failed to load ticket for follow-up notification", "ticket_id", ticketID, "error", err)
		return
	}
	assignment, err := p.assignments.GetByTicketID(ctx, ticketID)
	if err != nil {
		return
	}
	if authorID != nil && assignment.AssignTo() == *authorID {
		return
	}
	p.notifier.NewComment(ctx, t, comment, []uint{assignment.AssignTo()})
}

func (p *Pipeline) createTicket(ctx context.Context, msg *inbound.Message, rec *inbound.Record) MessageOutcome {
	extracted := p.extractBody(msg)
	refined := p.refiner.Refine(ctx, msg.Subject, extracted)
	authorID, authorName := p.resolveSender(ctx, msg)

	priority, err := vo.NewPriority(refined.Priority)
	if err != nil {
		priority = vo.PriorityLow
	}

	var categoryID *uint
	var defaultAssignee *uint
	if refined.Category != "" {
		if cat, err := p.categories.GetByName(ctx, refined.Category); err == nil && cat.IsActive() {
			id := cat.ID()
			categoryID = &id
			defaultAssignee = cat.DefaultAssigneeID()
		}
	}

	details := refined.Details
	if refined.Summary != "" && refined.Summary != refined.Details {
		details = refined.Summary + "\n\n" + refined.Details
	}

	newTicket, err := ticket.NewTicket(refined.Title, details, priority, authorID, nil)
	if err != nil {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}
	if err := newTicket.BackdateCreation(msg.ReceivedAt); err != nil {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
	}
	if categoryID != nil {
		newTicket.SetCategory(categoryID)
	}

	err = p.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Re-check under the transaction; a concurrent run may have taken
		// the conversation since the first lookup.
		if _, err := p.records.ConversationOwner(txCtx, msg.ConversationID); err == nil {
			return errConversationTaken
		} else if !errors.Is(err, inbound.ErrRecordNotFound) {
			return err
		}

		if err := p.tickets.Save(txCtx, newTicket); err != nil {
			return err
		}

		firstComment, err := ticket.NewComment(newTicket.ID(), authorID, authorName, extracted)
		if err != nil {
			return err
		}
		if err := p.comments.Save(txCtx, firstComment); err != nil {
			return err
		}

		if defaultAssignee != nil {
			actor := *defaultAssignee
			assignment, err := ticket.NewAssignment(newTicket.ID(), *defaultAssignee, actor)
			if err != nil {
				return err
			}
			if err := p.assignments.Save(txCtx, assignment); err != nil {
				return err
			}
			if err := p.assignments.AppendLog(txCtx, &ticket.AssignmentLog{
				TicketID:    newTicket.ID(),
				NewAssignee: *defaultAssignee,
				ChangedBy:   actor,
				ChangedAt:   assignment.UpdatedAt(),
			}); err != nil {
				return err
			}
		}

		if err := rec.ResolveAsTicket(newTicket.ID()); err != nil {
			return err
		}
		if err := p.records.Update(txCtx, rec); err != nil {
			// The owner-key index is the last line of defense.
			if errors.Is(err, inbound.ErrConversationOwned) {
				return errConversationTaken
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errConversationTaken) {
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: errConversationTaken.Error()}
	}
	if err != nil {
		if apperrors.IsAppError(err) {
			return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: err.Error()}
		}
		return MessageOutcome{MessageID: msg.MessageID, Action: ActionFailed, Detail: fmt.Sprintf("create ticket: %v", err)}
	}

	p.log.Infow("ticket created from email",
		"message_id", msg.MessageID,
		"ticket_id", newTicket.ID(),
		"auto_assigned", defaultAssignee != nil,
	)
	p.notifier.TicketCreated(ctx, newTicket, defaultAssignee)
	return MessageOutcome{MessageID: msg.MessageID, TicketID: newTicket.ID(), Action: ActionCreated}
}
