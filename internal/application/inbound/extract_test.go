package inbound

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "strips html markup",
			body: "<div><p>The printer is <b>broken</b>.</p><script>alert(1)</script></div>",
			want: "The printer is broken.",
		},
		{
			name: "cuts quoted reply at wrote marker",
			body: "Thanks, that fixed it.\n\nOn Tue, Aug 18, 2026 Dana West wrote:\n> original text",
			want: "Thanks, that fixed it.",
		},
		{
			name: "cuts at original message divider",
			body: "New content here.\n\n-----Original Message-----\nFrom: someone",
			want: "New content here.",
		},
		{
			name: "cuts at quoted lines",
			body: "My reply.\n> earlier thread line one\n> line two",
			want: "My reply.",
		},
		{
			name: "collapses whitespace runs",
			body: "Hello    there.\n\n\n\n\nSecond paragraph.",
			want: "Hello there.\n\nSecond paragraph.",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.body))
		})
	}
}

func TestExtractText_CapsLength(t *testing.T) {
	long := strings.Repeat("abcde ", 3000)
	got := ExtractText(long)
	assert.LessOrEqual(t, len(got), maxExtractedLen)
	assert.NotEmpty(t, got)
}

func TestFallbackSummary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "first sentence within bounds",
			text: "The printer on floor 3 jams on every job. It started on Monday and nothing helps.",
			want: "The printer on floor 3 jams on every job.",
		},
		{
			name: "short first sentence falls through to full text",
			text: "Help please. It is urgent.",
			want: "Help please. It is urgent.",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackSummary(tt.text))
		})
	}
}

func TestFallbackSummary_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := FallbackSummary(long)
	assert.LessOrEqual(t, len(got), 200)
	assert.NotEmpty(t, got)
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		text    string
		want    string
	}{
		{
			name:    "uses subject when present",
			subject: "Printer on floor 3 is broken",
			text:    "body text",
			want:    "Printer on floor 3 is broken",
		},
		{
			name:    "strips stacked reply prefixes",
			subject: "Re: FW: Re: Printer broken",
			text:    "body text",
			want:    "Printer broken",
		},
		{
			name:    "derives keywords from body when subject empty",
			subject: "",
			text:    "hello, the printer keeps jamming in the copy room",
			want:    "Printer Keeps Jamming Copy Room",
		},
		{
			name:    "placeholder when nothing usable",
			subject: "",
			text:    "",
			want:    "Support request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackTitle(tt.subject, tt.text))
		})
	}
}
