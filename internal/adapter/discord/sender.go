package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const placeholderMarker = "YOUR_"

var (
	// ErrNotConfigured is returned for channels without a usable endpoint.
	ErrNotConfigured = errors.New("notification channel not configured")
	ErrNoRecipient   = errors.New("direct message without recipient")
)

// Configured reports whether endpoint is set and not a template placeholder.
func Configured(endpoint string) bool {
	return endpoint != "" && !strings.Contains(endpoint, placeholderMarker)
}

type webhookPayload struct {
	Username  string        `json:"username,omitempty"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Content   string        `json:"content,omitempty"`
	Embeds    []model.Embed `json:"embeds,omitempty"`
}

type dmPayload struct {
	DiscordUserID  string        `json:"discordUserId"`
	MessageContent string        `json:"messageContent"`
	Embeds         []model.Embed `json:"embeds"`
}

// Sender posts notifications to channel webhooks and to the bot DM API.
type Sender struct {
	httpClient *http.Client
	botURL     string
	botSecret  string
	logger     *slog.Logger
}

// NewSender creates a sender. An empty botURL disables direct messages.
func NewSender(botURL, botSecret string, logger *slog.Logger) *Sender {
	return &Sender{
		httpClient: &http.Client{Timeout: requestTimeout},
		botURL:     botURL,
		botSecret:  botSecret,
		logger:     logger,
	}
}

// SendWebhook posts n to a Discord webhook URL.
func (s *Sender) SendWebhook(ctx context.Context, webhookURL string, n model.Notification) error {
	if !Configured(webhookURL) {
		return ErrNotConfigured
	}
	return s.post(ctx, webhookURL, nil, webhookPayload{
		Username:  n.Username,
		AvatarURL: n.AvatarURL,
		Content:   n.Content,
		Embeds:    n.Embeds,
	})
}

// SendDirectMessage asks the bot API to DM n to its recipient.
func (s *Sender) SendDirectMessage(ctx context.Context, n model.Notification) error {
	if !Configured(s.botURL) || s.botSecret == "" {
		return ErrNotConfigured
	}
	if n.Recipient == "" {
		return ErrNoRecipient
	}
	embeds := n.Embeds
	if embeds == nil {
		embeds = []model.Embed{}
	}
	header := http.Header{"x-api-secret": []string{s.botSecret}}
	return s.post(ctx, s.botURL, header, dmPayload{
		DiscordUserID:  n.Recipient,
		MessageContent: n.Content,
		Embeds:         embeds,
	})
}

func (s *Sender) post(ctx context.Context, endpoint string, header http.Header, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notification rejected: %s: %s", resp.Status, strings.TrimSpace(string(text)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
