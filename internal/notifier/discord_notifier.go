package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DiscordUsername is the display name used for webhook messages.
	DiscordUsername = "pagewatch"
	// MaxDiscordContentLength is Discord's limit on message content.
	MaxDiscordContentLength = 2000

	// Discord allows roughly five webhook calls per two seconds.
	discordRateInterval = 400 * time.Millisecond
	discordRateBurst    = 5
)

// DiscordNotifier posts messages to a Discord webhook
type DiscordNotifier struct {
	webhookURL  string
	avatarURL   string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithDiscordAvatar sets the avatar shown on webhook messages.
func WithDiscordAvatar(avatarURL string) DiscordOption {
	return func(dn *DiscordNotifier) { dn.avatarURL = avatarURL }
}

// NewDiscordNotifier creates a DiscordNotifier. A nil client falls back to a
// default client with a 20s timeout.
func NewDiscordNotifier(webhookURL string, httpClient *http.Client, logger zerolog.Logger, opts ...DiscordOption) (*DiscordNotifier, error) {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, common.NewValidationError("webhook_url", webhookURL, "invalid Discord webhook URL")
	}

	moduleLogger := logger.With().Str("component", "DiscordNotifier").Logger()
	if httpClient == nil {
		moduleLogger.Debug().Msg("HTTP client is nil, using default HTTP client with 20s timeout")
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}

	dn := &DiscordNotifier{
		webhookURL:  webhookURL,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Every(discordRateInterval), discordRateBurst),
		logger:      moduleLogger,
	}
	for _, opt := range opts {
		opt(dn)
	}
	return dn, nil
}

// Send posts msg, split into several webhook messages when it exceeds the
// content limit. The subject becomes a bold first line.
func (dn *DiscordNotifier) Send(ctx context.Context, msg Message) error {
	content := msg.Body
	if msg.Subject != "" {
		content = "**" + msg.Subject + "**\n" + content
	}

	for i, chunk := range SplitContent(content, MaxDiscordContentLength) {
		payload := NewDiscordMessagePayloadBuilder().
			WithUsername(DiscordUsername).
			WithAvatarURL(dn.avatarURL).
			WithContent(chunk).
			Build()
		if err := dn.post(ctx, payload); err != nil {
			return common.WrapError(err, fmt.Sprintf("failed to send part %d of Discord message", i+1))
		}
	}
	return nil
}

func (dn *DiscordNotifier) post(ctx context.Context, payload DiscordMessagePayload) error {
	if err := dn.rateLimiter.Wait(ctx); err != nil {
		return common.WrapError(err, "rate limiter wait cancelled")
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		return fmt.Errorf("failed to write payload_json to multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dn.webhookURL, body)
	if err != nil {
		return fmt.Errorf("failed to create discord request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := dn.httpClient.Do(req)
	if err != nil {
		return common.NewNetworkError(dn.webhookURL, "failed to send discord notification", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		dn.logger.Error().Int("status_code", resp.StatusCode).Str("response_body", string(respBody)).Msg("Discord notification failed")
		return common.NewHTTPErrorWithURL(resp.StatusCode, strings.TrimSpace(string(respBody)), dn.webhookURL)
	}

	dn.logger.Debug().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}

// SplitContent cuts content into chunks of at most limit runes, preferring
// line boundaries.
func SplitContent(content string, limit int) []string {
	if limit <= 0 || len([]rune(content)) <= limit {
		return []string{content}
	}

	var (
		chunks  []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		runes := []rune(line)
		if len(current)+len(runes) > limit {
			flush()
		}
		for len(runes) > limit {
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		current = append(current, runes...)
	}
	flush()
	return chunks
}
