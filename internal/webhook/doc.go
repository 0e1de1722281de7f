// Package webhook implements the GitHub webhook endpoint: HMAC-SHA1
// signature verification, event classification and relaying the formatted
// message to a Mattermost incoming webhook.
//
// # Security model
//
// - HMAC-SHA1 signatures verified using crypto/subtle (constant-time comparison)
// - An empty secret disables verification entirely (documented weak mode)
// - Body size limits enforced to prevent DoS
// - Request logging excludes payloads
//
// # Response contract
//
// The platform expects errors in-band: unimplemented events, ignored
// actions and signature failures answer with HTTP 200 and the rendered
// error message as the plain-text body. Only genuinely broken requests
// (missing event header, unreadable payload) and forwarding failures map
// to non-2xx statuses.
//
// # Request flow
//
//  1. HTTP POST arrives with the raw event payload
//  2. Body size checked (reject with 413 if too large)
//  3. HMAC-SHA1 signature verified when a secret is configured
//  4. Event kind read from X-GitHub-Event, payload formatted
//  5. Formatted message POSTed to the Mattermost webhook
//  6. 200 returned with the formatted text as body
package webhook
