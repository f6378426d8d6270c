package inbound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservation(t *testing.T) *Record {
	t.Helper()
	r, err := NewReservation("msg-1", "conv-1", "dana@example.com", "Printer broken")
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	tests := []struct {
		name           string
		messageID      string
		conversationID string
		wantErr        string
	}{
		{name: "valid", messageID: "msg-1", conversationID: "conv-1"},
		{name: "missing message ID", conversationID: "conv-1", wantErr: "message ID is required"},
		{name: "missing conversation ID", messageID: "msg-1", wantErr: "conversation ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReservation(tt.messageID, tt.conversationID, "dana@example.com", "subject")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, r.IsResolved())
			assert.Nil(t, r.LinkedTicketID())
			assert.Nil(t, r.OwnerKey())
		})
	}
}

func TestRecord_ResolveAsTicket(t *testing.T) {
	r := newReservation(t)

	require.NoError(t, r.ResolveAsTicket(42))
	assert.True(t, r.IsResolved())
	require.NotNil(t, r.LinkedTicketID())
	assert.Equal(t, uint(42), *r.LinkedTicketID())
	assert.False(t, r.IsFollowup())

	// Only the conversation-owning record carries the sentinel.
	require.NotNil(t, r.OwnerKey())
	assert.Equal(t, "conv-1", *r.OwnerKey())

	assert.Error(t, r.ResolveAsTicket(43))
	assert.Error(t, r.ResolveAsComment(43))
	assert.Error(t, r.Suppress())
}

func TestRecord_ResolveAsComment(t *testing.T) {
	r := newReservation(t)

	require.NoError(t, r.ResolveAsComment(42))
	assert.True(t, r.IsResolved())
	assert.True(t, r.IsFollowup())
	assert.Nil(t, r.OwnerKey())

	assert.Error(t, r.ResolveAsComment(43))
}

func TestRecord_Suppress(t *testing.T) {
	r := newReservation(t)

	require.NoError(t, r.Suppress())
	assert.True(t, r.IsResolved())
	assert.True(t, r.IsSuppressed())
	assert.Nil(t, r.LinkedTicketID())
	assert.Nil(t, r.OwnerKey())

	assert.Error(t, r.Suppress())
	assert.Error(t, r.ResolveAsTicket(42))
}

func TestRecord_ResolveRejectsZeroTicket(t *testing.T) {
	r := newReservation(t)
	assert.Error(t, r.ResolveAsTicket(0))
	assert.Error(t, r.ResolveAsComment(0))
	assert.False(t, r.IsResolved())
}

func TestRecord_SetID(t *testing.T) {
	r := newReservation(t)

	require.NoError(t, r.SetID(7))
	assert.Equal(t, uint(7), r.ID())
	assert.Error(t, r.SetID(8))
	assert.Error(t, newReservation(t).SetID(0))
}
