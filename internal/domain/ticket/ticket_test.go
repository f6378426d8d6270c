package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	creatorID := uint(1)
	tk, err := NewTicket("Printer offline", "The third floor printer dropped off the network.", vo.PriorityMedium, &creatorID, nil)
	require.NoError(t, err)
	return tk
}

func TestNewTicket(t *testing.T) {
	creatorID := uint(1)
	zeroCreator := uint(0)

	tests := []struct {
		name      string
		title     string
		details   string
		priority  vo.Priority
		creatorID *uint
		wantErr   string
	}{
		{
			name:      "valid ticket",
			title:     "Login broken",
			details:   "Cannot log in since this morning.",
			priority:  vo.PriorityHigh,
			creatorID: &creatorID,
		},
		{
			name:     "anonymous creator allowed",
			title:    "Door badge reader dead",
			details:  "North entrance reader shows no light.",
			priority: vo.PriorityLow,
		},
		{
			name:      "boundary title length",
			title:     strings.Repeat("a", 200),
			details:   "details",
			priority:  vo.PriorityMedium,
			creatorID: &creatorID,
		},
		{
			name:     "empty title",
			details:  "details",
			priority: vo.PriorityLow,
			wantErr:  "title is required",
		},
		{
			name:     "title too long",
			title:    strings.Repeat("a", 201),
			details:  "details",
			priority: vo.PriorityLow,
			wantErr:  "title exceeds maximum length",
		},
		{
			name:     "empty details",
			title:    "title",
			priority: vo.PriorityLow,
			wantErr:  "details are required",
		},
		{
			name:     "details too long",
			title:    "title",
			details:  strings.Repeat("a", 10001),
			priority: vo.PriorityLow,
			wantErr:  "details exceed maximum length",
		},
		{
			name:     "invalid priority",
			title:    "title",
			details:  "details",
			priority: "critical",
			wantErr:  "invalid priority",
		},
		{
			name:      "zero creator ID",
			title:     "title",
			details:   "details",
			priority:  vo.PriorityLow,
			creatorID: &zeroCreator,
			wantErr:   "creator ID cannot be zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.details, tt.priority, tt.creatorID, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, tk)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusPending, tk.Status())
			assert.Empty(t, tk.Tags())
			assert.Nil(t, tk.CompletedAt())
		})
	}
}

func TestTicket_ChangeStatus(t *testing.T) {
	t.Run("real transition", func(t *testing.T) {
		tk := newValidTicket(t)

		changed, err := tk.ChangeStatus(vo.StatusInProgress)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, vo.StatusInProgress, tk.Status())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		tk := newValidTicket(t)

		changed, err := tk.ChangeStatus(vo.StatusPending)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		tk := newValidTicket(t)

		changed, err := tk.ChangeStatus("paused")
		require.Error(t, err)
		assert.False(t, changed)
		assert.Equal(t, vo.StatusPending, tk.Status())
	})

	t.Run("completion stamps timestamp, reopening clears it", func(t *testing.T) {
		tk := newValidTicket(t)

		_, err := tk.ChangeStatus(vo.StatusCompleted)
		require.NoError(t, err)
		require.NotNil(t, tk.CompletedAt())

		_, err = tk.ChangeStatus(vo.StatusPending)
		require.NoError(t, err)
		assert.Nil(t, tk.CompletedAt())
	})
}

func TestTicket_SetID(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.SetID(42))
	assert.Equal(t, uint(42), tk.ID())

	assert.Error(t, tk.SetID(43))
	assert.Error(t, newValidTicket(t).SetID(0))
}

func TestTicket_BackdateCreation(t *testing.T) {
	receivedAt := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)

	t.Run("before persistence", func(t *testing.T) {
		tk := newValidTicket(t)
		require.NoError(t, tk.BackdateCreation(receivedAt))
		assert.Equal(t, receivedAt, tk.CreatedAt())
	})

	t.Run("rejected after persistence", func(t *testing.T) {
		tk := newValidTicket(t)
		require.NoError(t, tk.SetID(42))
		assert.Error(t, tk.BackdateCreation(receivedAt))
	})

	t.Run("zero time rejected", func(t *testing.T) {
		tk := newValidTicket(t)
		assert.Error(t, tk.BackdateCreation(time.Time{}))
	})
}

func TestTicket_UpdateContent(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.UpdateContent("New title", "New details"))
	assert.Equal(t, "New title", tk.Title())
	assert.Equal(t, "New details", tk.Details())

	assert.Error(t, tk.UpdateContent("", "details"))
	assert.Error(t, tk.UpdateContent("title", ""))
}

func TestTicket_TagsAreCopied(t *testing.T) {
	tk := newValidTicket(t)
	tk.SetTags([]string{"network", "printer"})

	tags := tk.Tags()
	tags[0] = "mutated"

	assert.Equal(t, []string{"network", "printer"}, tk.Tags())
}
