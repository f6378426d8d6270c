package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/category"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	creatorID := uint(1)
	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		command CreateTicketCommand
	}{
		{
			name: "urgent ticket with tags and due date",
			command: CreateTicketCommand{
				Title:     "Server room AC failure",
				Details:   "The AC unit in the server room stopped; temperature rising fast.",
				Priority:  "urgent",
				CreatorID: &creatorID,
				DueDate:   &due,
				Tags:      []string{"facilities", "hardware"},
			},
		},
		{
			name: "anonymous low priority ticket",
			command: CreateTicketCommand{
				Title:    "Coffee machine leaking",
				Details:  "The kitchen coffee machine leaks water under the counter.",
				Priority: "low",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var savedTicket *ticket.Ticket
			tickets := &mockTicketRepository{
				SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
					require.NoError(t, tkt.SetID(100))
					savedTicket = tkt
					return nil
				},
			}
			notifier := &mockNotifier{}

			uc := NewCreateTicketUseCase(tickets, &mockCategoryRepository{}, &mockAssignmentRepository{}, notifier, passthroughTxManager{}, logger.NewLogger())
			result, err := uc.Execute(context.Background(), tt.command)

			require.NoError(t, err)
			assert.Equal(t, uint(100), result.ID)
			assert.Equal(t, "pending", result.Status)

			require.NotNil(t, savedTicket)
			assert.Equal(t, tt.command.Title, savedTicket.Title())
			assert.Equal(t, tt.command.Priority, savedTicket.Priority().String())
			assert.ElementsMatch(t, tt.command.Tags, savedTicket.Tags())
		})
	}
}

func TestCreateTicketUseCase_Execute_AutoAssignsCategoryDefault(t *testing.T) {
	creatorID := uint(1)
	assigneeID := uint(7)
	categoryID := uint(3)

	cat, err := category.NewCategory("Facilities", &assigneeID)
	require.NoError(t, err)
	require.NoError(t, cat.SetID(categoryID))

	categories := &mockCategoryRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*category.Category, error) {
			require.Equal(t, categoryID, id)
			return cat, nil
		},
	}

	var savedAssignment *ticket.Assignment
	var appendedLogs []*ticket.AssignmentLog
	assignments := &mockAssignmentRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Assignment) error {
			savedAssignment = a
			return nil
		},
		AppendLogFunc: func(ctx context.Context, log *ticket.AssignmentLog) error {
			appendedLogs = append(appendedLogs, log)
			return nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewCreateTicketUseCase(&mockTicketRepository{}, categories, assignments, notifier, passthroughTxManager{}, logger.NewLogger())
	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:      "Broken desk lamp",
		Details:    "The lamp at desk 14 no longer turns on.",
		Priority:   "low",
		CategoryID: &categoryID,
		CreatorID:  &creatorID,
	})

	require.NoError(t, err)
	require.NotNil(t, result.AssigneeID)
	assert.Equal(t, assigneeID, *result.AssigneeID)

	require.NotNil(t, savedAssignment)
	assert.Equal(t, assigneeID, savedAssignment.AssignTo())
	assert.Equal(t, creatorID, savedAssignment.AssignBy())

	require.Len(t, appendedLogs, 1)
	assert.Nil(t, appendedLogs[0].OldAssignee)
	assert.Equal(t, assigneeID, appendedLogs[0].NewAssignee)
	assert.Equal(t, creatorID, appendedLogs[0].ChangedBy)

	created := notifier.callsOf("ticket_created")
	require.Len(t, created, 1)
	assert.Equal(t, []uint{assigneeID}, created[0].recipients)
}

func TestCreateTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	categoryID := uint(3)

	inactive, err := category.NewCategory("Retired", nil)
	require.NoError(t, err)
	require.NoError(t, inactive.SetID(categoryID))
	inactive.Deactivate()

	tests := []struct {
		name       string
		command    CreateTicketCommand
		categories *mockCategoryRepository
		wantErr    string
	}{
		{
			name:       "empty title",
			command:    CreateTicketCommand{Details: "some details", Priority: "low"},
			categories: &mockCategoryRepository{},
			wantErr:    "title is required",
		},
		{
			name:       "invalid priority",
			command:    CreateTicketCommand{Title: "x", Details: "y", Priority: "critical"},
			categories: &mockCategoryRepository{},
			wantErr:    "invalid priority",
		},
		{
			name:       "unknown category",
			command:    CreateTicketCommand{Title: "x", Details: "y", Priority: "low", CategoryID: &categoryID},
			categories: &mockCategoryRepository{},
			wantErr:    "category does not exist",
		},
		{
			name:    "inactive category",
			command: CreateTicketCommand{Title: "x", Details: "y", Priority: "low", CategoryID: &categoryID},
			categories: &mockCategoryRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*category.Category, error) {
					return inactive, nil
				},
			},
			wantErr: "category is not active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateTicketUseCase(&mockTicketRepository{}, tt.categories, &mockAssignmentRepository{}, &mockNotifier{}, passthroughTxManager{}, logger.NewLogger())
			result, err := uc.Execute(context.Background(), tt.command)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
