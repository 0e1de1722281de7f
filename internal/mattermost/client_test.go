package mattermost

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestClientSend(t *testing.T) {
	var gotBody []byte
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	err := client.Send(context.Background(), Post{
		Text:        "hello channel",
		Attachments: []Attachment{{Title: "a title", Text: "a body"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "hello channel", decoded["text"])
	require.Len(t, decoded["attachments"], 1)
}

func TestClientSendOmitsEmptyAttachments(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	require.NoError(t, client.Send(context.Background(), Post{Text: "plain"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.NotContains(t, decoded, "attachments")
}

func TestClientSendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid webhook", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	err := client.Send(context.Background(), Post{Text: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "invalid webhook")
}

func TestClientSendNoURL(t *testing.T) {
	client := NewClient("", testLogger())
	err := client.Send(context.Background(), Post{Text: "hello"})
	require.Error(t, err)
}

func TestCommandResponseMarshalFlattensExtras(t *testing.T) {
	resp := NewCommandResponse("a gif", map[string]any{"username": "alice"})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a gif", decoded["text"])
	assert.Equal(t, "in_channel", decoded["response_type"])
	assert.Equal(t, "alice", decoded["username"])
}

func TestCommandResponseReservedKeysWin(t *testing.T) {
	resp := CommandResponse{
		Text:         "real text",
		ResponseType: ResponseEphemeral,
		Extra:        map[string]any{"text": "spoofed", "response_type": "in_channel"},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "real text", decoded["text"])
	assert.Equal(t, "ephemeral", decoded["response_type"])
}

func TestNewEphemeralResponse(t *testing.T) {
	resp := NewEphemeralResponse("only you can see this")
	assert.Equal(t, ResponseEphemeral, resp.ResponseType)
	assert.Empty(t, resp.Extra)
}
