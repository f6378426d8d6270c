package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TicketStatus
		wantErr bool
	}{
		{name: "canonical pending", input: "pending", want: StatusPending},
		{name: "canonical in_progress", input: "in_progress", want: StatusInProgress},
		{name: "canonical completed", input: "completed", want: StatusCompleted},
		{name: "alias new", input: "new", want: StatusPending},
		{name: "alias open", input: "open", want: StatusPending},
		{name: "alias in progress with space", input: "in progress", want: StatusInProgress},
		{name: "alias in-progress with hyphen", input: "in-progress", want: StatusInProgress},
		{name: "alias done", input: "done", want: StatusCompleted},
		{name: "alias closed", input: "closed", want: StatusCompleted},
		{name: "alias resolved", input: "resolved", want: StatusCompleted},
		{name: "mixed case and whitespace", input: "  Resolved  ", want: StatusCompleted},
		{name: "unknown status", input: "paused", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTicketStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketStatus_Predicates(t *testing.T) {
	assert.True(t, StatusPending.IsPending())
	assert.True(t, StatusInProgress.IsInProgress())
	assert.True(t, StatusCompleted.IsCompleted())

	assert.False(t, StatusPending.IsCompleted())
	assert.False(t, TicketStatus("paused").IsValid())
}
