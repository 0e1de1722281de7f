package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/confirm/babelfish/internal/github"
	"github.com/confirm/babelfish/internal/mattermost"
)

// GitHub request headers.
const (
	EventHeader    = "X-GitHub-Event"
	DeliveryHeader = "X-GitHub-Delivery"
)

// Default values
const (
	DefaultSignatureHeader = "X-Hub-Signature"
	DefaultMaxBodySize     = 1048576 // 1 MB
)

// Forwarder sends a formatted message to the outgoing chat webhook.
type Forwarder interface {
	Send(ctx context.Context, post mattermost.Post) error
}

// Config holds webhook handler configuration.
type Config struct {
	// Secret is the shared HMAC secret; empty disables verification.
	Secret string

	// SignatureHeader is the HTTP header carrying the HMAC signature.
	SignatureHeader string

	// MaxBodySize is the maximum allowed request body size in bytes.
	MaxBodySize int64
}

// Handler accepts GitHub webhook deliveries and relays them to Mattermost.
type Handler struct {
	config    Config
	forwarder Forwarder
	logger    *slog.Logger
}

// NewHandler creates a webhook handler, applying defaults.
func NewHandler(config Config, forwarder Forwarder, logger *slog.Logger) *Handler {
	if config.SignatureHeader == "" {
		config.SignatureHeader = DefaultSignatureHeader
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	return &Handler{
		config:    config,
		forwarder: forwarder,
		logger:    logger,
	}
}

// ServeHTTP handles an incoming webhook POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limitedReader := io.LimitReader(r.Body, h.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		h.respondText(w, http.StatusInternalServerError, "failed to read request body")
		return
	}
	if int64(len(body)) > h.config.MaxBodySize {
		h.respondText(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	if err := VerifySignature(body, r.Header.Get(h.config.SignatureHeader), h.config.Secret); err != nil {
		h.logger.Warn("webhook signature rejected",
			"header", h.config.SignatureHeader,
			"reason", err,
		)
		h.respondText(w, http.StatusOK, err.Error())
		return
	}

	event := r.Header.Get(EventHeader)
	if event == "" {
		h.respondText(w, http.StatusBadRequest, "missing "+EventHeader+" header")
		return
	}

	delivery := r.Header.Get(DeliveryHeader)
	if delivery == "" {
		delivery = uuid.NewString()
	}

	msg, err := github.Format(event, body)
	if err != nil {
		var notImplemented *github.EventNotImplementedError
		var ignored *github.ActionIgnoredError
		if errors.As(err, &notImplemented) || errors.As(err, &ignored) {
			h.logger.Info("event answered in-band",
				"event", event,
				"delivery", delivery,
				"reason", err.Error(),
			)
			h.respondText(w, http.StatusOK, err.Error())
			return
		}

		h.logger.Warn("event payload rejected",
			"event", event,
			"delivery", delivery,
			"error", err,
		)
		h.respondText(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	post := mattermost.Post{Text: msg.Text}
	if msg.Attachment != nil {
		post.Attachments = []mattermost.Attachment{{
			Title: msg.Attachment.Title,
			Text:  msg.Attachment.Text,
		}}
	}

	if err := h.forwarder.Send(ctx, post); err != nil {
		h.logger.Error("failed to forward message",
			"event", event,
			"delivery", delivery,
			"error", err,
		)
		h.respondText(w, http.StatusBadGateway, "failed to forward message")
		return
	}

	h.logger.Info("event relayed",
		"event", event,
		"delivery", delivery,
		"attachment", msg.Attachment != nil,
	)
	h.respondText(w, http.StatusOK, msg.Text)
}

// respondText sends a plain-text response.
func (h *Handler) respondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}
