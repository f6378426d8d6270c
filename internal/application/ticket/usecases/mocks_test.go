package usecases

import (
	"context"
	"sync"

	"helpdesk/internal/domain/category"
	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
)

type mockTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc        func(ctx context.Context, ticketID uint) error
	GetByIDFunc       func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountByStatusFunc func(ctx context.Context, locationID *uint) (*ticket.StatusCounts, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return t.SetID(100)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context, locationID *uint) (*ticket.StatusCounts, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, locationID)
	}
	return &ticket.StatusCounts{}, nil
}

type mockCommentRepository struct {
	SaveFunc           func(ctx context.Context, c *ticket.Comment) error
	GetByTicketIDFunc  func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	ExistsFunc         func(ctx context.Context, ticketID uint, authorID *uint, body string) (bool, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockCommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) Exists(ctx context.Context, ticketID uint, authorID *uint, body string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, ticketID, authorID, body)
	}
	return false, nil
}

func (m *mockCommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockAssignmentRepository struct {
	SaveFunc           func(ctx context.Context, a *ticket.Assignment) error
	UpdateFunc         func(ctx context.Context, a *ticket.Assignment) error
	GetByTicketIDFunc  func(ctx context.Context, ticketID uint) (*ticket.Assignment, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error
	AppendLogFunc      func(ctx context.Context, log *ticket.AssignmentLog) error
	LogsByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.AssignmentLog, error)
}

func (m *mockAssignmentRepository) Save(ctx context.Context, a *ticket.Assignment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAssignmentRepository) Update(ctx context.Context, a *ticket.Assignment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAssignmentRepository) GetByTicketID(ctx context.Context, ticketID uint) (*ticket.Assignment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, apperrors.NewNotFoundError("assignment not found")
}

func (m *mockAssignmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockAssignmentRepository) AppendLog(ctx context.Context, log *ticket.AssignmentLog) error {
	if m.AppendLogFunc != nil {
		return m.AppendLogFunc(ctx, log)
	}
	return nil
}

func (m *mockAssignmentRepository) LogsByTicketID(ctx context.Context, ticketID uint) ([]*ticket.AssignmentLog, error) {
	if m.LogsByTicketIDFunc != nil {
		return m.LogsByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockStatusLogRepository struct {
	AppendFunc         func(ctx context.Context, log *ticket.StatusLog) error
	GetByTicketIDFunc  func(ctx context.Context, ticketID uint) ([]*ticket.StatusLog, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockStatusLogRepository) Append(ctx context.Context, log *ticket.StatusLog) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, log)
	}
	return nil
}

func (m *mockStatusLogRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.StatusLog, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockStatusLogRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockFollowUpRepository struct {
	SaveFunc           func(ctx context.Context, f *ticket.FollowUp) error
	DeleteFunc         func(ctx context.Context, ticketID, userID uint) error
	GetByTicketIDFunc  func(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockFollowUpRepository) Save(ctx context.Context, f *ticket.FollowUp) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, f)
	}
	return nil
}

func (m *mockFollowUpRepository) Delete(ctx context.Context, ticketID, userID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID, userID)
	}
	return nil
}

func (m *mockFollowUpRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockFollowUpRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockCategoryRepository struct {
	SaveFunc      func(ctx context.Context, c *category.Category) error
	UpdateFunc    func(ctx context.Context, c *category.Category) error
	DeleteFunc    func(ctx context.Context, categoryID uint) error
	GetByIDFunc   func(ctx context.Context, categoryID uint) (*category.Category, error)
	GetByNameFunc func(ctx context.Context, name string) (*category.Category, error)
	ListFunc      func(ctx context.Context, activeOnly bool) ([]*category.Category, error)
}

func (m *mockCategoryRepository) Save(ctx context.Context, c *category.Category) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, categoryID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, categoryID)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, categoryID uint) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, categoryID)
	}
	return nil, apperrors.NewNotFoundError("category not found")
}

func (m *mockCategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, apperrors.NewNotFoundError("category not found")
}

func (m *mockCategoryRepository) List(ctx context.Context, activeOnly bool) ([]*category.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	return nil, nil
}

type notifierCall struct {
	kind       string
	ticketID   uint
	recipients []uint
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
}

func (m *mockNotifier) record(call notifierCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockNotifier) TicketCreated(ctx context.Context, t *ticket.Ticket, assigneeID *uint) {
	call := notifierCall{kind: "ticket_created", ticketID: t.ID()}
	if assigneeID != nil {
		call.recipients = []uint{*assigneeID}
	}
	m.record(call)
}

func (m *mockNotifier) TicketAssigned(ctx context.Context, t *ticket.Ticket, assigneeID, actorID uint) {
	m.record(notifierCall{kind: "ticket_assigned", ticketID: t.ID(), recipients: []uint{assigneeID}})
}

func (m *mockNotifier) StatusChanged(ctx context.Context, t *ticket.Ticket, oldStatus, newStatus string, recipientIDs []uint) {
	m.record(notifierCall{kind: "status_changed", ticketID: t.ID(), recipients: recipientIDs})
}

func (m *mockNotifier) NewComment(ctx context.Context, t *ticket.Ticket, c *ticket.Comment, recipientIDs []uint) {
	m.record(notifierCall{kind: "new_comment", ticketID: t.ID(), recipients: recipientIDs})
}

func (m *mockNotifier) callsOf(kind string) []notifierCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notifierCall
	for _, c := range m.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
