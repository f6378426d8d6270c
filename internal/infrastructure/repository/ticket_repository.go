package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper *mappers.TicketMapper
}

func NewTicketRepository(database *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     database,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("save ticket: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("update ticket %d: %w", model.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Delete(&models.TicketModel{}, ticketID)
	if result.Error != nil {
		return fmt.Errorf("delete ticket %d: %w", ticketID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	if err := conn.First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("get ticket %d: %w", ticketID, err)
	}
	return r.mapper.ToDomain(&model)
}

var ticketSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"priority":   "priority",
	"status":     "status",
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)
	query := conn.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.AssigneeID != nil {
		query = query.Where(
			"id IN (?)",
			conn.Model(&models.TicketAssignmentModel{}).
				Select("ticket_id").
				Where("assign_to = ?", *filter.AssigneeID),
		)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL AND due_date < ?", *filter.DueBefore)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR details LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	sortBy, ok := ticketSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	pagination := utils.ValidatePagination(filter.Page, filter.PageSize)

	var rows []models.TicketModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	return tickets, total, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, locationID *uint) (*ticket.StatusCounts, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	base := func() *gorm.DB {
		q := conn.Model(&models.TicketModel{})
		if locationID != nil {
			q = q.Where("location_id = ?", *locationID)
		}
		return q
	}

	counts := &ticket.StatusCounts{}
	type pair struct {
		status string
		dest   *int64
	}
	for _, p := range []pair{
		{vo.StatusPending.String(), &counts.Pending},
		{vo.StatusInProgress.String(), &counts.InProgress},
		{vo.StatusCompleted.String(), &counts.Completed},
	} {
		if err := base().Where("status = ?", p.status).Count(p.dest).Error; err != nil {
			return nil, fmt.Errorf("count %s tickets: %w", p.status, err)
		}
	}

	err := base().
		Where("status <> ?", vo.StatusCompleted.String()).
		Where("due_date IS NOT NULL AND due_date < ?", biztime.NowUTC()).
		Count(&counts.Overdue).Error
	if err != nil {
		return nil, fmt.Errorf("count overdue tickets: %w", err)
	}

	counts.Total = counts.Pending + counts.InProgress + counts.Completed
	return counts, nil
}
