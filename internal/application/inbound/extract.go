package inbound

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxExtractedLen = 10000
	maxSummaryLen   = 500
	maxTitleLen     = 120
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	// Quoted-reply markers. Everything from the first marker on is the
	// earlier thread, not new content.
	replyMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?mi)^-{2,}\s*Original Message\s*-{2,}`),
		regexp.MustCompile(`(?mi)^From:\s.+$`),
		regexp.MustCompile(`(?mi)^Sent:\s.+$`),
		regexp.MustCompile(`(?mi)^On .{1,200} wrote:`),
		regexp.MustCompile(`(?m)^>`),
	}

	blankLines  = regexp.MustCompile(`\n{3,}`)
	spaceRuns   = regexp.MustCompile(`[ \t]{2,}`)
	sentenceEnd = regexp.MustCompile(`[.!?](\s|$)`)

	titleCaser = cases.Title(language.English)
)

// ExtractText reduces a raw email body to the sender's new content: markup
// stripped, quoted reply history cut off, whitespace collapsed, capped.
func ExtractText(body string) string {
	// Sanitizing escapes entities in text nodes ("&gt;", "&nbsp;"), which
	// would hide the quoted-reply markers; unescape before matching.
	text := stripPolicy.Sanitize(body)
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	// Cut at the earliest reply marker.
	cut := len(text)
	for _, marker := range replyMarkers {
		if loc := marker.FindStringIndex(text); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	text = text[:cut]

	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if len(text) > maxExtractedLen {
		text = strings.TrimSpace(text[:maxExtractedLen])
	}
	return text
}

// FallbackSummary derives a summary without the LLM: the first sentence
// when it lands between 20 and 200 characters, else a plain truncation.
func FallbackSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if loc := sentenceEnd.FindStringIndex(text); loc != nil {
		sentence := strings.TrimSpace(text[:loc[0]+1])
		if len(sentence) >= 20 && len(sentence) <= 200 {
			return sentence
		}
	}

	if len(text) > 200 {
		return strings.TrimSpace(text[:200])
	}
	return text
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "hello": true, "hi": true, "i": true,
	"in": true, "is": true, "it": true, "my": true, "of": true, "on": true,
	"or": true, "our": true, "please": true, "that": true, "the": true,
	"there": true, "this": true, "to": true, "was": true, "we": true,
	"will": true, "with": true, "you": true, "your": true,
}

// FallbackTitle derives a title without the LLM: the subject when usable,
// else the first meaningful words of the body, sentence-cased.
func FallbackTitle(subject, text string) string {
	subject = strings.TrimSpace(stripReplyPrefixes(subject))
	if subject != "" {
		return clipTitle(subject)
	}

	words := strings.Fields(text)
	keywords := make([]string, 0, 8)
	for _, w := range words {
		if stopWords[strings.ToLower(strings.Trim(w, ".,!?;:"))] {
			continue
		}
		keywords = append(keywords, strings.Trim(w, ".,!?;:"))
		if len(keywords) == 8 {
			break
		}
	}
	if len(keywords) == 0 {
		return "Support request"
	}
	return clipTitle(titleCaser.String(strings.ToLower(strings.Join(keywords, " "))))
}

var replyPrefix = regexp.MustCompile(`(?i)^(re|fw|fwd)\s*:\s*`)

func stripReplyPrefixes(subject string) string {
	for {
		stripped := replyPrefix.ReplaceAllString(subject, "")
		if stripped == subject {
			return subject
		}
		subject = stripped
	}
}

func clipTitle(s string) string {
	if len(s) > maxTitleLen {
		return strings.TrimSpace(s[:maxTitleLen])
	}
	return s
}
