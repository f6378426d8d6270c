package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{name: "low", input: "low", want: PriorityLow},
		{name: "medium", input: "medium", want: PriorityMedium},
		{name: "high", input: "high", want: PriorityHigh},
		{name: "urgent", input: "urgent", want: PriorityUrgent},
		{name: "uppercase normalized", input: "HIGH", want: PriorityHigh},
		{name: "whitespace trimmed", input: " urgent ", want: PriorityUrgent},
		{name: "unknown priority", input: "critical", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPriority(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_Weight(t *testing.T) {
	assert.Greater(t, PriorityUrgent.Weight(), PriorityHigh.Weight())
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
	assert.Zero(t, Priority("unknown").Weight())
}
