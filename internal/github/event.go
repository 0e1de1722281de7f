// Package github turns GitHub webhook event payloads into Mattermost-ready
// messages.
//
// Each supported event kind has a formatter which is a pure function from
// the decoded payload to a Message. Unknown kinds and ignorable actions are
// reported through typed errors so callers can answer in-band instead of
// failing the request.
package github

// User is a GitHub account, always renderable as a Markdown link.
type User struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Repository is the repository sub-object shared by most event kinds.
type Repository struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// Comment covers commit, issue and review comments.
type Comment struct {
	CommitID string `json:"commit_id,omitempty"`
	HTMLURL  string `json:"html_url"`
	Body     string `json:"body"`
}

// Issue is the issue sub-object of issue and issue_comment events.
type Issue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
}

// PullRequest is the pull_request sub-object.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
	Merged  bool   `json:"merged"`
}

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// Commit is a single commit of a push event.
type Commit struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Event is the decoded webhook payload. The sub-objects are kind-specific
// and partially overlapping; absent ones stay nil.
type Event struct {
	Action      string       `json:"action,omitempty"`
	Sender      User         `json:"sender"`
	Repository  Repository   `json:"repository"`
	Comment     *Comment     `json:"comment,omitempty"`
	Issue       *Issue       `json:"issue,omitempty"`
	PullRequest *PullRequest `json:"pull_request,omitempty"`
	Assignee    *User        `json:"assignee,omitempty"`
	Label       *Label       `json:"label,omitempty"`
	Ref         string       `json:"ref,omitempty"`
	RefType     string       `json:"ref_type,omitempty"`
	Commits     []Commit     `json:"commits,omitempty"`
}

// Attachment is the optional rich part of a formatted message.
type Attachment struct {
	Title string
	Text  string
}

// Message is the outcome of formatting a single event. Text is never empty
// on success.
type Message struct {
	Text       string
	Attachment *Attachment
}
