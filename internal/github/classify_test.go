package github

import (
	"errors"
	"testing"
)

func TestCanonicalKind(t *testing.T) {
	tests := []struct {
		event string
		want  string
	}{
		{"push", "Push"},
		{"pull_request", "PullRequest"},
		{"pull_request_review_comment", "PullRequestReviewComment"},
		{"commit_comment", "CommitComment"},
		{"issue_comment", "IssueComment"},
		{"", ""},
		{"__weird__", "Weird"},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			if got := CanonicalKind(tt.event); got != tt.want {
				t.Errorf("CanonicalKind(%q) = %q, want %q", tt.event, got, tt.want)
			}
		})
	}
}

func TestClassifyKnownKinds(t *testing.T) {
	known := []string{
		"commit_comment",
		"create",
		"delete",
		"issue",
		"issue_comment",
		"pull_request",
		"pull_request_review_comment",
		"push",
	}

	for _, event := range known {
		t.Run(event, func(t *testing.T) {
			f, err := Classify(event)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", event, err)
			}
			if f == nil {
				t.Fatalf("Classify(%q) returned nil formatter", event)
			}
		})
	}
}

func TestClassifyUnknownKind(t *testing.T) {
	for _, event := range []string{"gollum", "watch", "release", ""} {
		t.Run(event, func(t *testing.T) {
			_, err := Classify(event)

			var notImpl *EventNotImplementedError
			if !errors.As(err, &notImpl) {
				t.Fatalf("Classify(%q) error = %v, want EventNotImplementedError", event, err)
			}
			if notImpl.Event != event {
				t.Errorf("error event = %q, want %q", notImpl.Event, event)
			}
		})
	}
}

func TestFormatDecodesPayload(t *testing.T) {
	payload := []byte(`{
		"ref": "refs/heads/main",
		"ref_type": "branch",
		"sender": {"login": "alice", "html_url": "https://github.com/alice"},
		"repository": {"full_name": "acme/widget", "html_url": "https://github.com/acme/widget"}
	}`)

	msg, err := Format("create", payload)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "[alice](https://github.com/alice) created branch `refs/heads/main` in [acme/widget](https://github.com/acme/widget)"
	if msg.Text != want {
		t.Errorf("Text = %q, want %q", msg.Text, want)
	}
}

func TestFormatMalformedPayload(t *testing.T) {
	if _, err := Format("push", []byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestFormatUnknownKindShortCircuits(t *testing.T) {
	_, err := Format("deployment_status", []byte(`{}`))

	var notImpl *EventNotImplementedError
	if !errors.As(err, &notImpl) {
		t.Fatalf("error = %v, want EventNotImplementedError", err)
	}
	if got := notImpl.Error(); got != "Github event deployment_status not implemented" {
		t.Errorf("rendered error = %q", got)
	}
}
