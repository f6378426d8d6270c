package inbound

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"helpdesk/internal/shared/logger"
)

const refineInput = "The printer on floor 3 jams on every job. Please send someone to take a look."

func newTestRefiner(complete func(ctx context.Context, model, system, user string) (string, error)) *Refiner {
	return NewRefiner(&mockChatCompleter{CompleteFunc: complete}, testLLMConfig(), logger.NewLogger())
}

func TestRefiner_Refine_AppliesValidModelOutput(t *testing.T) {
	r := newTestRefiner(func(ctx context.Context, model, system, user string) (string, error) {
		switch model {
		case "extract-model":
			return `{"details": "The floor 3 printer jams on every print job.", "priority": "high", "category": "Facilities"}`, nil
		case "summary-model":
			return "Printer on floor 3 jams constantly and needs a technician.", nil
		case "title-model":
			return `"Floor 3 printer jamming"`, nil
		}
		return "", errors.New("unexpected model")
	})

	got := r.Refine(context.Background(), "Printer broken", refineInput)

	assert.Equal(t, "The floor 3 printer jams on every print job.", got.Details)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, "Facilities", got.Category)
	assert.Equal(t, "Printer on floor 3 jams constantly and needs a technician.", got.Summary)
	assert.Equal(t, "Floor 3 printer jamming", got.Title)
}

func TestRefiner_Refine_AcceptsFencedJSON(t *testing.T) {
	r := newTestRefiner(func(ctx context.Context, model, system, user string) (string, error) {
		if model == "extract-model" {
			return "```json\n{\"details\": \"Printer needs repair on floor 3.\", \"priority\": \"medium\", \"category\": \"\"}\n```", nil
		}
		return "", errors.New("skip")
	})

	got := r.Refine(context.Background(), "Printer broken", refineInput)

	assert.Equal(t, "Printer needs repair on floor 3.", got.Details)
	assert.Equal(t, "medium", got.Priority)
}

func TestRefiner_Refine_RejectsMetaOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"refusal", `{"details": "I'm sorry, as an AI I cannot process this email.", "priority": "low", "category": ""}`},
		{"task narration", `{"details": "Here is the extracted request: fix the printer.", "priority": "low", "category": ""}`},
		{"empty details", `{"details": "", "priority": "high", "category": "x"}`},
		{"not json", `the printer is broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRefiner(func(ctx context.Context, model, system, user string) (string, error) {
				if model == "extract-model" {
					return tt.reply, nil
				}
				return "", errors.New("skip")
			})

			got := r.Refine(context.Background(), "Printer broken", refineInput)

			// Rejected output falls back to the deterministic extraction.
			assert.Equal(t, refineInput, got.Details)
			assert.Equal(t, "low", got.Priority)
			assert.Empty(t, got.Category)
		})
	}
}

func TestRefiner_Refine_InvalidPriorityDefaultsLow(t *testing.T) {
	r := newTestRefiner(func(ctx context.Context, model, system, user string) (string, error) {
		if model == "extract-model" {
			return `{"details": "Printer needs repair.", "priority": "critical", "category": ""}`, nil
		}
		return "", errors.New("skip")
	})

	got := r.Refine(context.Background(), "Printer broken", refineInput)
	assert.Equal(t, "low", got.Priority)
}

func TestRefiner_Refine_TransportFailureUsesFallbacks(t *testing.T) {
	r := newTestRefiner(func(ctx context.Context, model, system, user string) (string, error) {
		return "", errors.New("model timeout")
	})

	got := r.Refine(context.Background(), "Re: Printer broken", refineInput)

	assert.Equal(t, "Printer broken", got.Title)
	assert.Equal(t, "The printer on floor 3 jams on every job.", got.Summary)
	assert.Equal(t, refineInput, got.Details)
	assert.Equal(t, "low", got.Priority)
	assert.Empty(t, got.Category)
}

func TestRefiner_Refine_RejectsOverlongStageOutput(t *testing.T) {
	r := newTestRefiner(func(ctx context.Context, model, system, user string) (string, error) {
		switch model {
		case "summary-model":
			return strings.Repeat("x", maxSummaryLen+1), nil
		case "title-model":
			return strings.Repeat("y", maxTitleLen+1), nil
		}
		return "", errors.New("skip")
	})

	got := r.Refine(context.Background(), "Printer broken", refineInput)

	assert.Equal(t, "The printer on floor 3 jams on every job.", got.Summary)
	assert.Equal(t, "Printer broken", got.Title)
}

func TestRefiner_Refine_NilChatSkipsModel(t *testing.T) {
	r := NewRefiner(nil, testLLMConfig(), logger.NewLogger())

	got := r.Refine(context.Background(), "Printer broken", refineInput)

	assert.Equal(t, refineInput, got.Details)
	assert.Equal(t, "Printer broken", got.Title)
}
