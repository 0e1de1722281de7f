package github

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatterFunc maps a decoded event to a Message.
type FormatterFunc func(*Event) (*Message, error)

// formatters is the static dispatch table from canonical kind identifier
// to formatter. Adding a kind means adding an entry here, nothing else.
var formatters = map[string]FormatterFunc{
	"CommitComment":            formatCommitComment,
	"Create":                   formatCreate,
	"Delete":                   formatDelete,
	"Issue":                    formatIssue,
	"IssueComment":             formatIssueComment,
	"PullRequest":              formatPullRequest,
	"PullRequestReviewComment": formatPullRequestReviewComment,
	"Push":                     formatPush,
}

// CanonicalKind converts a wire event kind like "pull_request_review_comment"
// to its canonical identifier "PullRequestReviewComment".
func CanonicalKind(event string) string {
	parts := strings.Split(event, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// Classify resolves the formatter for a wire event kind. Unknown kinds
// yield an EventNotImplementedError.
func Classify(event string) (FormatterFunc, error) {
	f, ok := formatters[CanonicalKind(event)]
	if !ok {
		return nil, &EventNotImplementedError{Event: event}
	}
	return f, nil
}

// Format classifies the event kind, decodes the payload and runs the
// matching formatter.
func Format(event string, payload []byte) (*Message, error) {
	f, err := Classify(event)
	if err != nil {
		return nil, err
	}

	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", event, err)
	}

	return f(&e)
}
