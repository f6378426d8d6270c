package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/domain/category"
	domainticket "helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type stubTicketRepo struct {
	stored *domainticket.Ticket
}

func (s *stubTicketRepo) Save(ctx context.Context, t *domainticket.Ticket) error {
	if err := t.SetID(101); err != nil {
		return err
	}
	s.stored = t
	return nil
}

func (s *stubTicketRepo) Update(ctx context.Context, t *domainticket.Ticket) error { return nil }
func (s *stubTicketRepo) Delete(ctx context.Context, ticketID uint) error          { return nil }

func (s *stubTicketRepo) GetByID(ctx context.Context, ticketID uint) (*domainticket.Ticket, error) {
	if s.stored != nil && s.stored.ID() == ticketID {
		return s.stored, nil
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (s *stubTicketRepo) List(ctx context.Context, filter domainticket.TicketFilter) ([]*domainticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (s *stubTicketRepo) CountByStatus(ctx context.Context, locationID *uint) (*domainticket.StatusCounts, error) {
	return &domainticket.StatusCounts{}, nil
}

type stubCommentRepo struct{}

func (stubCommentRepo) Save(ctx context.Context, c *domainticket.Comment) error { return nil }
func (stubCommentRepo) GetByTicketID(ctx context.Context, ticketID uint) ([]*domainticket.Comment, error) {
	return nil, nil
}
func (stubCommentRepo) Exists(ctx context.Context, ticketID uint, authorID *uint, body string) (bool, error) {
	return false, nil
}
func (stubCommentRepo) DeleteByTicketID(ctx context.Context, ticketID uint) error { return nil }

type stubAssignmentRepo struct{}

func (stubAssignmentRepo) Save(ctx context.Context, a *domainticket.Assignment) error   { return nil }
func (stubAssignmentRepo) Update(ctx context.Context, a *domainticket.Assignment) error { return nil }
func (stubAssignmentRepo) GetByTicketID(ctx context.Context, ticketID uint) (*domainticket.Assignment, error) {
	return nil, apperrors.NewNotFoundError("assignment not found")
}
func (stubAssignmentRepo) DeleteByTicketID(ctx context.Context, ticketID uint) error { return nil }
func (stubAssignmentRepo) AppendLog(ctx context.Context, log *domainticket.AssignmentLog) error {
	return nil
}
func (stubAssignmentRepo) LogsByTicketID(ctx context.Context, ticketID uint) ([]*domainticket.AssignmentLog, error) {
	return nil, nil
}

type stubStatusLogRepo struct{}

func (stubStatusLogRepo) Append(ctx context.Context, log *domainticket.StatusLog) error { return nil }
func (stubStatusLogRepo) GetByTicketID(ctx context.Context, ticketID uint) ([]*domainticket.StatusLog, error) {
	return nil, nil
}
func (stubStatusLogRepo) DeleteByTicketID(ctx context.Context, ticketID uint) error { return nil }

type stubFollowUpRepo struct{}

func (stubFollowUpRepo) Save(ctx context.Context, f *domainticket.FollowUp) error  { return nil }
func (stubFollowUpRepo) Delete(ctx context.Context, ticketID, userID uint) error   { return nil }
func (stubFollowUpRepo) GetByTicketID(ctx context.Context, ticketID uint) ([]*domainticket.FollowUp, error) {
	return nil, nil
}
func (stubFollowUpRepo) DeleteByTicketID(ctx context.Context, ticketID uint) error { return nil }

type stubCategoryRepo struct{}

func (stubCategoryRepo) Save(ctx context.Context, c *category.Category) error   { return nil }
func (stubCategoryRepo) Update(ctx context.Context, c *category.Category) error { return nil }
func (stubCategoryRepo) Delete(ctx context.Context, categoryID uint) error      { return nil }
func (stubCategoryRepo) GetByID(ctx context.Context, categoryID uint) (*category.Category, error) {
	return nil, apperrors.NewNotFoundError("category not found")
}
func (stubCategoryRepo) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return nil, apperrors.NewNotFoundError("category not found")
}
func (stubCategoryRepo) List(ctx context.Context, activeOnly bool) ([]*category.Category, error) {
	return nil, nil
}

type stubNotifier struct{}

func (stubNotifier) TicketCreated(ctx context.Context, t *domainticket.Ticket, assigneeID *uint) {}
func (stubNotifier) TicketAssigned(ctx context.Context, t *domainticket.Ticket, assigneeID, actorID uint) {
}
func (stubNotifier) StatusChanged(ctx context.Context, t *domainticket.Ticket, oldStatus, newStatus string, recipientIDs []uint) {
}
func (stubNotifier) NewComment(ctx context.Context, t *domainticket.Ticket, c *domainticket.Comment, recipientIDs []uint) {
}

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubTicketRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tickets := &stubTicketRepo{}
	log := logger.NewLogger()

	createUC := usecases.NewCreateTicketUseCase(tickets, stubCategoryRepo{}, stubAssignmentRepo{}, stubNotifier{}, noopTxManager{}, log)
	getUC := usecases.NewGetTicketUseCase(tickets, stubCommentRepo{}, stubAssignmentRepo{}, stubStatusLogRepo{}, stubFollowUpRepo{})

	h := NewHandler(createUC, nil, nil, nil, nil, getUC, nil, nil, nil, nil, nil)

	r := gin.New()
	r.POST("/api/tickets", h.Create)
	r.GET("/api/tickets/:id", h.Get)
	return r, tickets
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid request",
			body:       `{"title":"Printer broken","details":"Paper jams on every job.","priority":"high"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "priority defaults to medium",
			body:       `{"title":"Printer broken","details":"Paper jams on every job."}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			body:       `{"details":"Paper jams on every job."}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown priority",
			body:       `{"title":"x","details":"y","priority":"critical"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp struct {
					Success bool `json:"success"`
					Data    struct {
						ID     uint   `json:"id"`
						Status string `json:"status"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, uint(101), resp.Data.ID)
				assert.Equal(t, "pending", resp.Data.Status)
			}
		})
	}
}

func TestHandler_Get(t *testing.T) {
	r, tickets := newTestRouter(t)

	// Seed a ticket through the create endpoint.
	body := `{"title":"Printer broken","details":"Paper jams on every job."}`
	req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, tickets.stored)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/101", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Ticket struct {
					ID    uint   `json:"id"`
					Title string `json:"title"`
				} `json:"ticket"`
				Comments  []json.RawMessage `json:"comments"`
				Followers []uint            `json:"followers"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint(101), resp.Data.Ticket.ID)
		assert.Equal(t, "Printer broken", resp.Data.Ticket.Title)
		assert.Empty(t, resp.Data.Comments)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
