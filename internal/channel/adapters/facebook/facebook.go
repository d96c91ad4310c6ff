// Package facebook sends outbound replies through the Facebook Graph Send API.
package facebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chatrelay/chatrelay/internal/channel"
)

// Type is the Facebook channel type.
const Type = channel.ChannelType("facebook")

const defaultAPIBase = "https://graph.facebook.com/v18.0"

// Adapter implements channel.Sender for Facebook Messenger.
type Adapter struct {
	logger    *slog.Logger
	client    *http.Client
	apiBase   string
	pageToken string
}

// NewAdapter creates a Facebook sender using the given page access token.
// An empty token is accepted; sends then fail at request time.
func NewAdapter(log *slog.Logger, pageToken string) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		logger:    log.With(slog.String("adapter", "facebook")),
		client:    &http.Client{Timeout: 30 * time.Second},
		apiBase:   defaultAPIBase,
		pageToken: strings.TrimSpace(pageToken),
	}
}

// SetAPIBase overrides the Graph API base URL. Used in tests.
func (a *Adapter) SetAPIBase(base string) {
	a.apiBase = strings.TrimRight(base, "/")
}

// Type returns the Facebook channel type.
func (a *Adapter) Type() channel.ChannelType {
	return Type
}

type sendRequest struct {
	Recipient recipient   `json:"recipient"`
	Message   messageBody `json:"message"`
}

type recipient struct {
	ID string `json:"id"`
}

type messageBody struct {
	Text string `json:"text"`
}

// Send delivers msg through the Graph API /me/messages endpoint with the
// page token in the query string.
func (a *Adapter) Send(ctx context.Context, msg channel.OutboundMessage) error {
	if a.pageToken == "" {
		return fmt.Errorf("facebook page token is not configured")
	}
	target := strings.TrimSpace(msg.Target)
	if target == "" {
		return fmt.Errorf("facebook target is required")
	}

	payload, err := json.Marshal(sendRequest{
		Recipient: recipient{ID: target},
		Message:   messageBody{Text: msg.Text},
	})
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	endpoint := a.apiBase + "/me/messages?access_token=" + url.QueryEscape(a.pageToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("facebook send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("facebook send failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	a.logger.Debug("message sent", slog.String("recipient", target))
	return nil
}
