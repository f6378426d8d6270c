package inbound

import (
	"context"
	"sync"
	"time"

	"helpdesk/internal/domain/category"
	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
)

// fakeRecordStore is an in-memory RecordRepository with the same semantics
// as the MySQL implementation: unique message ids, unique owner keys, and
// rows that do not alias the domain objects handed to callers.
type fakeRecordStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*inbound.Record

	ReserveErr error
	UpdateErr  error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{rows: map[string]*inbound.Record{}}
}

func cloneRecord(r *inbound.Record) *inbound.Record {
	var linked *uint
	if r.LinkedTicketID() != nil {
		id := *r.LinkedTicketID()
		linked = &id
	}
	copied, err := inbound.ReconstructRecord(
		r.ID(), r.MessageID(), r.ConversationID(), r.SenderEmail(), r.Subject(),
		linked, r.IsFollowup(), r.IsSuppressed(), r.ProcessedAt(),
	)
	if err != nil {
		panic(err)
	}
	return copied
}

func (s *fakeRecordStore) Reserve(ctx context.Context, r *inbound.Record) error {
	if s.ReserveErr != nil {
		return s.ReserveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[r.MessageID()]; exists {
		return inbound.ErrDuplicateMessage
	}
	s.nextID++
	if err := r.SetID(s.nextID); err != nil {
		return err
	}
	s.rows[r.MessageID()] = cloneRecord(r)
	return nil
}

func (s *fakeRecordStore) Update(ctx context.Context, r *inbound.Record) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[r.MessageID()]; !exists {
		return inbound.ErrRecordNotFound
	}
	if key := r.OwnerKey(); key != nil {
		for _, row := range s.rows {
			if row.MessageID() != r.MessageID() && row.OwnerKey() != nil && *row.OwnerKey() == *key {
				return inbound.ErrConversationOwned
			}
		}
	}
	s.rows[r.MessageID()] = cloneRecord(r)
	return nil
}

func (s *fakeRecordStore) Delete(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[messageID]; !exists {
		return inbound.ErrRecordNotFound
	}
	delete(s.rows, messageID)
	return nil
}

func (s *fakeRecordStore) GetByMessageID(ctx context.Context, messageID string) (*inbound.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, exists := s.rows[messageID]
	if !exists {
		return nil, inbound.ErrRecordNotFound
	}
	return cloneRecord(row), nil
}

func (s *fakeRecordStore) ConversationOwner(ctx context.Context, conversationID string) (*inbound.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if key := row.OwnerKey(); key != nil && *key == conversationID {
			return cloneRecord(row), nil
		}
	}
	return nil, inbound.ErrRecordNotFound
}

func (s *fakeRecordStore) ListUnresolved(ctx context.Context, since time.Time) ([]*inbound.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*inbound.Record
	for _, row := range s.rows {
		if row.IsResolved() || row.ProcessedAt().Before(since) {
			continue
		}
		resolvedElsewhere := false
		for _, other := range s.rows {
			if other.ConversationID() == row.ConversationID() && other.LinkedTicketID() != nil {
				resolvedElsewhere = true
				break
			}
		}
		if !resolvedElsewhere {
			out = append(out, cloneRecord(row))
		}
	}
	return out, nil
}

type mockRecordRepository struct {
	ReserveFunc           func(ctx context.Context, r *inbound.Record) error
	UpdateFunc            func(ctx context.Context, r *inbound.Record) error
	DeleteFunc            func(ctx context.Context, messageID string) error
	GetByMessageIDFunc    func(ctx context.Context, messageID string) (*inbound.Record, error)
	ConversationOwnerFunc func(ctx context.Context, conversationID string) (*inbound.Record, error)
	ListUnresolvedFunc    func(ctx context.Context, since time.Time) ([]*inbound.Record, error)
}

func (m *mockRecordRepository) Reserve(ctx context.Context, r *inbound.Record) error {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, r)
	}
	return r.SetID(1)
}

func (m *mockRecordRepository) Update(ctx context.Context, r *inbound.Record) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockRecordRepository) Delete(ctx context.Context, messageID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, messageID)
	}
	return nil
}

func (m *mockRecordRepository) GetByMessageID(ctx context.Context, messageID string) (*inbound.Record, error) {
	if m.GetByMessageIDFunc != nil {
		return m.GetByMessageIDFunc(ctx, messageID)
	}
	return nil, inbound.ErrRecordNotFound
}

func (m *mockRecordRepository) ConversationOwner(ctx context.Context, conversationID string) (*inbound.Record, error) {
	if m.ConversationOwnerFunc != nil {
		return m.ConversationOwnerFunc(ctx, conversationID)
	}
	return nil, inbound.ErrRecordNotFound
}

func (m *mockRecordRepository) ListUnresolved(ctx context.Context, since time.Time) ([]*inbound.Record, error) {
	if m.ListUnresolvedFunc != nil {
		return m.ListUnresolvedFunc(ctx, since)
	}
	return nil, nil
}

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

type mockIdentityGateway struct {
	ResolveByEmailFunc func(ctx context.Context, email string) (*uint, string, error)
}

func (m *mockIdentityGateway) ResolveByEmail(ctx context.Context, email string) (*uint, string, error) {
	if m.ResolveByEmailFunc != nil {
		return m.ResolveByEmailFunc(ctx, email)
	}
	return nil, "", apperrors.NewNotFoundError("user not found")
}

type mockChatCompleter struct {
	CompleteFunc func(ctx context.Context, model, system, user string) (string, error)
}

func (m *mockChatCompleter) Complete(ctx context.Context, model, system, user string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, model, system, user)
	}
	return "", apperrors.NewUpstreamError("no completion configured")
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

func (m *mockNotifier) TicketCreated(ctx context.Context, t *ticket.Ticket, assigneeID *uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := notifierCall{kind: "ticket_created", ticketID: t.ID()}
	if assigneeID != nil {
		call.recipients = []uint{*assigneeID}
	}
	m.calls = append(m.calls, call)
}

func (m *mockNotifier) NewComment(ctx context.Context, t *ticket.Ticket, c *ticket.Comment, recipientIDs []uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifierCall{kind: "new_comment", ticketID: t.ID(), recipients: recipientIDs})
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

type mockMailboxGateway struct {
	ListMessagesFunc func(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error)
	GetMessageFunc   func(ctx context.Context, messageID string) (*inbound.Message, error)
}

func (m *mockMailboxGateway) ListMessages(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, since, limit)
	}
	return nil, nil
}

func (m *mockMailboxGateway) GetMessage(ctx context.Context, messageID string) (*inbound.Message, error) {
	if m.GetMessageFunc != nil {
		return m.GetMessageFunc(ctx, messageID)
	}
	return nil, apperrors.NewNotFoundError("message not found")
}
