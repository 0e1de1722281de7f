package github

import (
	"fmt"
	"strings"
)

// userLink renders a Markdown link to a GitHub account.
func userLink(u User) string {
	return fmt.Sprintf("[%s](%s)", u.Login, u.HTMLURL)
}

// repositoryLink renders a Markdown link to the repository.
func repositoryLink(r Repository) string {
	return fmt.Sprintf("[%s](%s)", r.FullName, r.HTMLURL)
}

// firstLine shortens multi-line text to its first line, marking the cut
// with an ellipsis. Empty input stays empty.
func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	line, _, cut := strings.Cut(text, "\n")
	if cut {
		line += "…"
	}
	return line
}

// shortSHA truncates a commit SHA to the conventional 7 characters.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func formatCommitComment(e *Event) (*Message, error) {
	if e.Comment == nil {
		return nil, fmt.Errorf("commit_comment payload has no comment")
	}

	text := fmt.Sprintf("%s %s a comment on commit [`%s`](%s) in %s",
		userLink(e.Sender),
		e.Action,
		shortSHA(e.Comment.CommitID),
		e.Comment.HTMLURL,
		repositoryLink(e.Repository),
	)

	return &Message{
		Text:       text,
		Attachment: &Attachment{Text: e.Comment.Body},
	}, nil
}

func formatCreate(e *Event) (*Message, error) {
	text := fmt.Sprintf("%s created %s `%s` in %s",
		userLink(e.Sender),
		e.RefType,
		e.Ref,
		repositoryLink(e.Repository),
	)
	return &Message{Text: text}, nil
}

func formatDelete(e *Event) (*Message, error) {
	text := fmt.Sprintf("%s deleted %s `%s` in %s",
		userLink(e.Sender),
		e.RefType,
		e.Ref,
		repositoryLink(e.Repository),
	)
	return &Message{Text: text}, nil
}

func formatIssue(e *Event) (*Message, error) {
	if e.Issue == nil {
		return nil, fmt.Errorf("issue payload has no issue")
	}

	text := fmt.Sprintf("%s %s an issue [#%d %s](%s) in %s",
		userLink(e.Sender),
		e.Action,
		e.Issue.Number,
		e.Issue.Title,
		e.Issue.HTMLURL,
		repositoryLink(e.Repository),
	)

	switch e.Action {
	case "assigned":
		if e.Assignee != nil {
			text += fmt.Sprintf(" to %s", userLink(*e.Assignee))
		}
	case "labeled":
		if e.Label != nil {
			text += fmt.Sprintf(" with `%s`", e.Label.Name)
		}
	case "unlabeled":
		if e.Label != nil {
			text += fmt.Sprintf(" from `%s`", e.Label.Name)
		}
	}

	msg := &Message{Text: text}
	// "opened" also matches "reopened", both carry the issue body.
	if strings.Contains(e.Action, "opened") {
		msg.Attachment = &Attachment{Title: e.Issue.Title, Text: e.Issue.Body}
	}
	return msg, nil
}

func formatIssueComment(e *Event) (*Message, error) {
	if e.Issue == nil || e.Comment == nil {
		return nil, fmt.Errorf("issue_comment payload has no issue or comment")
	}

	text := fmt.Sprintf("%s %s a comment on issue [#%d %s](%s) in %s",
		userLink(e.Sender),
		e.Action,
		e.Issue.Number,
		e.Issue.Title,
		e.Issue.HTMLURL,
		repositoryLink(e.Repository),
	)

	msg := &Message{Text: text}
	if e.Comment.Body != "" {
		msg.Attachment = &Attachment{Title: e.Issue.Title, Text: e.Comment.Body}
	}
	return msg, nil
}

func formatPullRequest(e *Event) (*Message, error) {
	if e.PullRequest == nil {
		return nil, fmt.Errorf("pull_request payload has no pull_request")
	}

	action := e.Action
	if action == "closed" && e.PullRequest.Merged {
		action = "merged"
	}

	text := fmt.Sprintf("%s %s a pull request [#%d %s](%s) in %s",
		userLink(e.Sender),
		action,
		e.PullRequest.Number,
		e.PullRequest.Title,
		e.PullRequest.HTMLURL,
		repositoryLink(e.Repository),
	)

	if action == "assigned" && e.Assignee != nil {
		text += fmt.Sprintf(" to %s", userLink(*e.Assignee))
	}

	msg := &Message{Text: text}
	if strings.Contains(e.Action, "opened") {
		msg.Attachment = &Attachment{Title: e.PullRequest.Title, Text: e.PullRequest.Body}
	}
	return msg, nil
}

func formatPullRequestReviewComment(e *Event) (*Message, error) {
	if e.PullRequest == nil || e.Comment == nil {
		return nil, fmt.Errorf("pull_request_review_comment payload has no pull_request or comment")
	}

	text := fmt.Sprintf("%s %s a comment on pull request [#%d %s](%s) in %s",
		userLink(e.Sender),
		e.Action,
		e.PullRequest.Number,
		e.PullRequest.Title,
		e.PullRequest.HTMLURL,
		repositoryLink(e.Repository),
	)

	msg := &Message{Text: text}
	if e.Comment.Body != "" {
		msg.Attachment = &Attachment{Title: e.PullRequest.Title, Text: e.Comment.Body}
	}
	return msg, nil
}

func formatPush(e *Event) (*Message, error) {
	if len(e.Commits) == 0 {
		return nil, &ActionIgnoredError{Event: "push", Action: "commit_zero"}
	}

	// refs/heads/<branch>; the branch name itself may contain slashes.
	branch := e.Ref
	if parts := strings.SplitN(e.Ref, "/", 3); len(parts) == 3 {
		branch = parts[2]
	}
	branchURL := fmt.Sprintf("%s/tree/%s", e.Repository.HTMLURL, branch)

	commitsWord := "commit"
	if len(e.Commits) > 1 {
		commitsWord = "commits"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s pushed %d %s to [%s](%s) at %s\n\n",
		userLink(e.Sender),
		len(e.Commits),
		commitsWord,
		branch,
		branchURL,
		repositoryLink(e.Repository),
	)

	b.WriteString("| SHA | Message |\n")
	b.WriteString("| --- | ------- |\n")
	for _, commit := range e.Commits {
		fmt.Fprintf(&b, "| [`%s`](%s) | %s |\n", shortSHA(commit.ID), commit.URL, firstLine(commit.Message))
	}

	return &Message{Text: b.String()}, nil
}
