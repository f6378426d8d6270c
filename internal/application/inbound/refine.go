package inbound

import (
	"context"
	"encoding/json"
	"strings"

	sharedconfig "helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

// Refined is the pipeline's best rendering of a message into ticket fields.
// Every field is guaranteed non-degenerate: when the model output fails
// validation the deterministic fallback fills it in.
type Refined struct {
	Title    string
	Summary  string
	Details  string
	Priority string
	Category string
}

// metaPhrases reject model output that talks about the task instead of
// doing it.
var metaPhrases = []string{
	"as an ai",
	"i cannot",
	"i'm sorry",
	"here is the",
	"here's the",
	"the email says",
	"the sender",
	"sure,",
	"certainly",
}

func looksLikeMeta(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range metaPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Refiner runs the three LLM stages over extracted text, validating each
// stage's output and replacing rejected output with the deterministic
// fallback. A transport failure in any stage falls back the same way; the
// pipeline never blocks on the model.
type Refiner struct {
	chat ChatCompleter
	cfg  *sharedconfig.LLMConfig
	log  logger.Interface
}

func NewRefiner(chat ChatCompleter, cfg *sharedconfig.LLMConfig, log logger.Interface) *Refiner {
	return &Refiner{chat: chat, cfg: cfg, log: log.Named("refiner")}
}

const extractSystemPrompt = `You turn raw helpdesk emails into structured ticket fields. Reply with only a JSON object: {"details": string, "priority": "low"|"medium"|"high"|"urgent", "category": string}. details restates the sender's request in clear prose without salutations or signatures. category is a short topic label, or "" when unclear. No markdown, no commentary.`

const summarySystemPrompt = `Summarize the helpdesk request in one short paragraph, at most 400 characters. State the problem and what is being asked for. Reply with only the summary text.`

const titleSystemPrompt = `Write a ticket title for the helpdesk request: at most 90 characters, specific, no trailing punctuation. Reply with only the title text.`

// Refine produces the full refined view of a message. extracted must be the
// deterministic extraction output; it doubles as the fallback for every
// stage.
func (r *Refiner) Refine(ctx context.Context, subject, extracted string) Refined {
	refined := Refined{
		Title:    FallbackTitle(subject, extracted),
		Summary:  FallbackSummary(extracted),
		Details:  extracted,
		Priority: "low",
	}
	if r.chat == nil || extracted == "" {
		return refined
	}

	if details, priority, category, ok := r.refineDetails(ctx, extracted); ok {
		refined.Details = details
		refined.Priority = priority
		refined.Category = category
	}
	if summary, ok := r.summarize(ctx, extracted); ok {
		refined.Summary = summary
	}
	if title, ok := r.title(ctx, subject, extracted); ok {
		refined.Title = title
	}
	return refined
}

func (r *Refiner) refineDetails(ctx context.Context, extracted string) (details, priority, category string, ok bool) {
	reply, err := r.chat.Complete(ctx, r.cfg.ExtractModel, extractSystemPrompt, extracted)
	if err != nil {
		r.log.Warnw("extract stage failed, using fallback", "error", err)
		return "", "", "", false
	}

	var parsed struct {
		Details  string `json:"details"`
		Priority string `json:"priority"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(stripFence(reply)), &parsed); err != nil {
		r.log.Warnw("extract stage returned non-JSON, using fallback", "error", err)
		return "", "", "", false
	}

	parsed.Details = strings.TrimSpace(parsed.Details)
	if parsed.Details == "" || len(parsed.Details) > maxExtractedLen || looksLikeMeta(parsed.Details) {
		return "", "", "", false
	}

	switch parsed.Priority {
	case "low", "medium", "high", "urgent":
	default:
		parsed.Priority = "low"
	}
	return parsed.Details, parsed.Priority, strings.TrimSpace(parsed.Category), true
}

func (r *Refiner) summarize(ctx context.Context, extracted string) (string, bool) {
	reply, err := r.chat.Complete(ctx, r.cfg.SummaryModel, summarySystemPrompt, extracted)
	if err != nil {
		r.log.Warnw("summary stage failed, using fallback", "error", err)
		return "", false
	}

	summary := strings.TrimSpace(reply)
	if summary == "" || len(summary) > maxSummaryLen || looksLikeMeta(summary) {
		return "", false
	}
	return summary, true
}

func (r *Refiner) title(ctx context.Context, subject, extracted string) (string, bool) {
	reply, err := r.chat.Complete(ctx, r.cfg.TitleModel, titleSystemPrompt, extracted)
	if err != nil {
		r.log.Warnw("title stage failed, using fallback", "error", err)
		return "", false
	}

	title := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"`))
	if title == "" || len(title) > maxTitleLen || looksLikeMeta(title) {
		return "", false
	}
	return title, true
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
