// Package mattermost speaks the Mattermost incoming-webhook and slash
// command JSON contracts.
package mattermost

import "encoding/json"

// Response types for slash command responses.
const (
	ResponseInChannel = "in_channel"
	ResponseEphemeral = "ephemeral"
)

// Attachment is a rich message attachment.
type Attachment struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Post is the JSON body sent to an incoming webhook.
type Post struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// CommandResponse is the JSON body returned to a slash command request.
// Extra fields (username, icon_url, ...) are flattened into the top-level
// object on marshalling.
type CommandResponse struct {
	Text         string
	ResponseType string
	Extra        map[string]any
}

// NewCommandResponse builds an in_channel response with optional extras.
func NewCommandResponse(text string, extra map[string]any) CommandResponse {
	return CommandResponse{Text: text, ResponseType: ResponseInChannel, Extra: extra}
}

// NewEphemeralResponse builds a response only the invoking user sees.
func NewEphemeralResponse(text string) CommandResponse {
	return CommandResponse{Text: text, ResponseType: ResponseEphemeral}
}

// MarshalJSON flattens Extra into the response object. The text and
// response_type keys always win over extras.
func (r CommandResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["text"] = r.Text
	out["response_type"] = r.ResponseType
	return json.Marshal(out)
}
