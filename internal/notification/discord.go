package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
)

// DiscordService implements domain.NotificationService for Discord webhooks
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	httpClient *http.Client
}

// NewDiscordService creates a new Discord notification service
func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendSuccess sends a success notification with run statistics
func (s *DiscordService) SendSuccess(ctx context.Context, stats domain.Statistics) error {
	if s.webhookURL == "" {
		return nil // No webhook configured, skip silently
	}

	embed := discordEmbed{
		Title:       "Image Resolution Completed",
		Description: "Band image resolution run completed successfully",
		Color:       0x00ff00, // Green
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []discordField{
			{
				Name:   "Total Bands",
				Value:  fmt.Sprintf("%d", stats.Total),
				Inline: true,
			},
			{
				Name:   "Resolved",
				Value:  fmt.Sprintf("%d (%.1f%%)", stats.Resolved, stats.CoveragePercent),
				Inline: true,
			},
			{
				Name:   "Confirmed Absent",
				Value:  fmt.Sprintf("%d", stats.Missing),
				Inline: true,
			},
			{
				Name:   "Failed",
				Value:  fmt.Sprintf("%d", stats.Failed),
				Inline: true,
			},
			{
				Name:   "Served From Cache",
				Value:  fmt.Sprintf("%d", stats.FromCache),
				Inline: true,
			},
		},
	}

	payload := discordWebhook{
		Embeds: []discordEmbed{embed},
	}

	return s.sendWebhook(ctx, payload)
}

// SendError sends an error notification
func (s *DiscordService) SendError(ctx context.Context, runErr error) error {
	if s.webhookURL == "" {
		return nil
	}

	embed := discordEmbed{
		Title:       "Image Resolution Failed",
		Description: runErr.Error(),
		Color:       0xff0000, // Red
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	payload := discordWebhook{
		Embeds: []discordEmbed{embed},
	}

	return s.sendWebhook(ctx, payload)
}

func (s *DiscordService) sendWebhook(ctx context.Context, payload discordWebhook) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	s.log.Debug().Msg("Sent Discord notification")
	return nil
}

type discordWebhook struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
