package usecases

import (
	"context"
	"fmt"
	"io"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

type AttachFileCommand struct {
	TicketID   uint
	AuthorID   *uint
	AuthorName string
	Filename   string
	Size       int64
	Content    io.Reader
}

type AttachFileResult struct {
	URL     string         `json:"url"`
	Comment *CommentResult `json:"comment"`
}

// AttachFileUseCase uploads a file to object storage and records it on the
// ticket as a comment carrying the link.
type AttachFileUseCase struct {
	tickets  ticket.TicketRepository
	comments ticket.CommentRepository
	store    FileStore
	log      logger.Interface
}

func NewAttachFileUseCase(
	tickets ticket.TicketRepository,
	comments ticket.CommentRepository,
	store FileStore,
	log logger.Interface,
) *AttachFileUseCase {
	return &AttachFileUseCase{
		tickets:  tickets,
		comments: comments,
		store:    store,
		log:      log.Named("attach-file"),
	}
}

func (uc *AttachFileUseCase) Execute(ctx context.Context, cmd AttachFileCommand) (*AttachFileResult, error) {
	if _, err := uc.tickets.GetByID(ctx, cmd.TicketID); err != nil {
		return nil, err
	}

	url, err := uc.store.Upload(ctx, cmd.Filename, cmd.Size, cmd.Content)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Attached file [%s](%s)", cmd.Filename, url)
	comment, err := ticket.NewComment(cmd.TicketID, cmd.AuthorID, cmd.AuthorName, body)
	if err != nil {
		return nil, err
	}
	if err := uc.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	uc.log.Infow("file attached", "ticket_id", cmd.TicketID, "filename", cmd.Filename)
	return &AttachFileResult{URL: url, Comment: NewCommentResult(comment)}, nil
}
