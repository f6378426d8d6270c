package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
)

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

func (m *TicketMapper) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	tags, err := json.Marshal(t.Tags())
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	return &models.TicketModel{
		ID:          t.ID(),
		Title:       t.Title(),
		Details:     t.Details(),
		CategoryID:  t.CategoryID(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		LocationID:  t.LocationID(),
		DueDate:     t.DueDate(),
		Tags:        datatypes.JSON(tags),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		CompletedAt: t.CompletedAt(),
	}, nil
}

func (m *TicketMapper) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	var tags []string
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("ticket %d: unmarshal tags: %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Details,
		model.CategoryID,
		priority,
		status,
		model.CreatorID,
		model.LocationID,
		model.DueDate,
		tags,
		model.CreatedAt,
		model.UpdatedAt,
		model.CompletedAt,
	)
}

type CommentMapper struct{}

func NewCommentMapper() *CommentMapper {
	return &CommentMapper{}
}

func (m *CommentMapper) ToModel(c *ticket.Comment) *models.TicketCommentModel {
	return &models.TicketCommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Body:       c.Body(),
		CreatedAt:  c.CreatedAt(),
	}
}

func (m *CommentMapper) ToDomain(model *models.TicketCommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.AuthorName,
		model.Body,
		model.CreatedAt,
	)
}

type AssignmentMapper struct{}

func NewAssignmentMapper() *AssignmentMapper {
	return &AssignmentMapper{}
}

func (m *AssignmentMapper) ToModel(a *ticket.Assignment) *models.TicketAssignmentModel {
	return &models.TicketAssignmentModel{
		ID:        a.ID(),
		TicketID:  a.TicketID(),
		AssignTo:  a.AssignTo(),
		AssignBy:  a.AssignBy(),
		UpdatedAt: a.UpdatedAt(),
	}
}

func (m *AssignmentMapper) ToDomain(model *models.TicketAssignmentModel) (*ticket.Assignment, error) {
	return ticket.ReconstructAssignment(
		model.ID,
		model.TicketID,
		model.AssignTo,
		model.AssignBy,
		model.UpdatedAt,
	)
}
