// Package alert fans operator alerts out to the configured channels.
package alert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trenddrop/internal/config"
	"trenddrop/internal/email"
	"trenddrop/internal/metrics"
	"trenddrop/internal/telegram"
)

// Alerter delivers a short plain-text alert.
type Alerter interface {
	Send(ctx context.Context, text string) error
}

// MessageSender is the subset of the Telegram client used for alerts.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Telegram posts alerts to a chat. A missing sender or chat makes it a no-op.
type Telegram struct {
	sender MessageSender
	chatID string
}

func NewTelegram(sender MessageSender, chatID string) *Telegram {
	return &Telegram{sender: sender, chatID: chatID}
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	if t.sender == nil || t.chatID == "" {
		return nil
	}
	return t.sender.SendMessage(ctx, t.chatID, text)
}

// Mailer is the subset of the SMTP service used for alerts.
type Mailer interface {
	IsEnabled() bool
	Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error
}

// Email mails alerts to a fixed recipient list.
type Email struct {
	mailer    Mailer
	templates *email.Templates
	to        []string
	now       func() time.Time
}

func NewEmail(mailer Mailer, templates *email.Templates, to []string) *Email {
	return &Email{mailer: mailer, templates: templates, to: to, now: time.Now}
}

func (e *Email) Send(ctx context.Context, text string) error {
	if !e.mailer.IsEnabled() || len(e.to) == 0 {
		return nil
	}
	subject, htmlBody, textBody := e.templates.Alert(text, e.now())
	return e.mailer.Send(ctx, e.to, subject, htmlBody, textBody)
}

// Multi dispatches to every channel under one timeout and joins the errors.
type Multi struct {
	channels []Alerter
	timeout  time.Duration
}

func NewMulti(timeout time.Duration, channels ...Alerter) *Multi {
	return &Multi{channels: channels, timeout: timeout}
}

func (m *Multi) Send(ctx context.Context, text string) error {
	if len(m.channels) == 0 {
		slog.Debug("alert dropped, no channels configured", "text", text)
		return nil
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	var errs []error
	for _, ch := range m.channels {
		if err := ch.Send(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	metrics.RecordAlert(err == nil)
	if err != nil {
		slog.Warn("alert dispatch failed", "error", err)
	}
	return err
}

// FromConfig builds the alert channels enabled by cfg.
func FromConfig(cfg *config.Config, tg *telegram.Client) *Multi {
	var channels []Alerter
	if cfg.IsTelegramEnabled() && cfg.TelegramAlertChatID != "" {
		channels = append(channels, NewTelegram(tg, cfg.TelegramAlertChatID))
	}
	if cfg.IsEmailEnabled() && len(cfg.AlertEmailTo) > 0 {
		channels = append(channels, NewEmail(email.NewService(cfg), email.NewTemplates(cfg), cfg.AlertEmailTo))
	}
	if len(channels) == 0 {
		slog.Warn("no alert channels configured, health failures will only be logged")
	}
	return NewMulti(cfg.AlertTimeout, channels...)
}
