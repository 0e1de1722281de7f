// Package slash implements the Mattermost slash command endpoint for GIF
// lookups.
package slash

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/confirm/babelfish/internal/mattermost"
)

// User-visible response texts.
const (
	promptText   = "Please enter a text after the slash command"
	notFoundText = "No GIF found matching your text"
)

// ErrInvalidToken is returned when the configured token doesn't match the
// request's. Unlike the webhook path this is a request-level rejection,
// never an in-band answer: an attacker probing the endpoint gets a 401,
// not a chat message.
var ErrInvalidToken = errors.New("invalid token")

// GifFinder looks up a GIF URL for the given text. An empty URL with a nil
// error means no match.
type GifFinder interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Handler answers Mattermost slash command requests.
type Handler struct {
	token  string
	finder GifFinder
	logger *slog.Logger
}

// NewHandler creates a slash command handler. An empty token disables
// token verification, meaning anyone who can reach the endpoint can use
// the command.
func NewHandler(token string, finder GifFinder, logger *slog.Logger) *Handler {
	return &Handler{
		token:  token,
		finder: finder,
		logger: logger,
	}
}

// ServeHTTP handles a form-encoded slash command POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	if err := h.checkToken(r.PostFormValue("token")); err != nil {
		h.logger.Warn("slash command token rejected")
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	username := r.PostFormValue("user_name")
	text := strings.TrimSpace(r.PostFormValue("text"))
	if text == "" {
		h.respond(w, mattermost.NewEphemeralResponse(promptText))
		return
	}

	gifURL, err := h.finder.Translate(r.Context(), text)
	if err != nil {
		h.logger.Error("gif lookup failed", "error", err)
		h.respondError(w, http.StatusBadGateway, "lookup failed")
		return
	}

	if gifURL == "" {
		h.respond(w, mattermost.NewEphemeralResponse(notFoundText))
		return
	}

	h.logger.Info("slash command answered", "user", username)
	h.respond(w, mattermost.NewCommandResponse(gifURL, map[string]any{
		"username": username,
	}))
}

// checkToken validates the request token against the configured one using
// constant-time comparison. A missing token counts as a mismatch.
func (h *Handler) checkToken(got string) error {
	if h.token == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

func (h *Handler) respond(w http.ResponseWriter, resp mattermost.CommandResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
