package github

import "fmt"

// EventNotImplementedError reports an event kind with no registered
// formatter. It is a terminal but non-fatal condition: the rendered
// message becomes the whole response body.
type EventNotImplementedError struct {
	Event string
}

func (e *EventNotImplementedError) Error() string {
	return fmt.Sprintf("Github event %s not implemented", e.Event)
}

// ActionIgnoredError reports an action a formatter deliberately skips,
// such as a push with zero commits. Non-fatal, answered in-band.
type ActionIgnoredError struct {
	Event  string
	Action string
}

func (e *ActionIgnoredError) Error() string {
	return fmt.Sprintf("Github action %s of event %s ignored", e.Action, e.Event)
}
