// Package email delivers operator alerts over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"trenddrop/internal/config"
)

const boundary = "TrendDropBoundary7f3a9c"

// Service sends mail through the configured SMTP relay.
type Service struct {
	cfg     *config.Config
	enabled bool
}

// NewService creates a new email service.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		enabled: cfg.IsEmailEnabled(),
	}

	if s.enabled {
		slog.Info("email alerts enabled", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		slog.Debug("email alerts disabled, SMTP not configured")
	}

	return s
}

// IsEnabled returns true if email is enabled.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// Send delivers a message to the recipients. A disabled service or an empty
// recipient list is a no-op.
func (s *Service) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	if !s.enabled || len(to) == 0 {
		return nil
	}

	msg := buildMessage(s.fromHeader(), to, subject, htmlBody, textBody)
	addr := net.JoinHostPort(s.cfg.SMTPHost, fmt.Sprint(s.cfg.SMTPPort))

	client, err := s.dial(ctx, addr)
	if err != nil {
		return err
	}
	defer client.Close()

	return s.deliver(client, to, msg)
}

func (s *Service) fromHeader() string {
	if s.cfg.SMTPFromName != "" {
		return fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom)
	}
	return s.cfg.SMTPFrom
}

// dial opens an SMTP session honouring ctx for the connect and for the
// conversation deadline. SMTP_TLS selects implicit TLS ("tls", port 465),
// STARTTLS ("starttls", port 587) or plaintext ("none").
func (s *Service) dial(ctx context.Context, addr string) (*smtp.Client, error) {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	var conn net.Conn
	var err error
	if s.cfg.SMTPTLS == "tls" {
		d := &tls.Dialer{Config: tlsConfig}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("SMTP dial failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SMTP client failed: %w", err)
	}

	if s.cfg.SMTPTLS == "starttls" {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	return client, nil
}

func (s *Service) deliver(client *smtp.Client, to []string, msg string) error {
	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("SMTP MAIL failed: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("SMTP RCPT failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("SMTP write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("SMTP close failed: %w", err)
	}

	return client.Quit()
}

// buildMessage renders a multipart/alternative MIME message. Empty bodies
// are left out.
func buildMessage(from string, to []string, subject, htmlBody, textBody string) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	if textBody != "" {
		writePart(&msg, "text/plain", textBody)
	}
	if htmlBody != "" {
		writePart(&msg, "text/html", htmlBody)
	}

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	return msg.String()
}

func writePart(msg *strings.Builder, contentType, body string) {
	fmt.Fprintf(msg, "--%s\r\n", boundary)
	fmt.Fprintf(msg, "Content-Type: %s; charset=\"UTF-8\"\r\n\r\n", contentType)
	msg.WriteString(body)
	msg.WriteString("\r\n")
}
