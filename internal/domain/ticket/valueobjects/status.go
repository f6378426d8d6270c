package valueobjects

import (
	"fmt"
	"strings"
)

type TicketStatus string

const (
	StatusPending    TicketStatus = "pending"
	StatusInProgress TicketStatus = "in_progress"
	StatusCompleted  TicketStatus = "completed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// statusAliases maps legacy spellings that still arrive from old clients and
// imported data onto the canonical statuses.
var statusAliases = map[string]TicketStatus{
	"new":         StatusPending,
	"open":        StatusPending,
	"inprogress":  StatusInProgress,
	"in progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"done":        StatusCompleted,
	"closed":      StatusCompleted,
	"resolved":    StatusCompleted,
	"complete":    StatusCompleted,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsPending() bool {
	return ts == StatusPending
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

func (ts TicketStatus) IsCompleted() bool {
	return ts == StatusCompleted
}

// NewTicketStatus parses s into a canonical status, normalizing legacy
// variants. Unknown values are rejected.
func NewTicketStatus(s string) (TicketStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	ts := TicketStatus(normalized)
	if ts.IsValid() {
		return ts, nil
	}
	if alias, ok := statusAliases[normalized]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid ticket status: %s", s)
}
