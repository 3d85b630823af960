package alert

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trenddrop/internal/config"
	"trenddrop/internal/email"
	"trenddrop/internal/metrics"
)

type fakeSender struct {
	chatID, text string
	calls        int
	err          error
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID, text string) error {
	f.calls++
	f.chatID, f.text = chatID, text
	return f.err
}

type fakeMailer struct {
	enabled bool
	to      []string
	subject string
	calls   int
	err     error
}

func (f *fakeMailer) IsEnabled() bool { return f.enabled }

func (f *fakeMailer) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	f.calls++
	f.to, f.subject = to, subject
	return f.err
}

type recordingAlerter struct {
	err      error
	deadline bool
}

func (r *recordingAlerter) Send(ctx context.Context, text string) error {
	_, r.deadline = ctx.Deadline()
	return r.err
}

func TestTelegram_Send(t *testing.T) {
	tests := []struct {
		name      string
		chatID    string
		wantCalls int
	}{
		{"configured chat", "-100", 1},
		{"no chat is a no-op", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSender{}
			if err := NewTelegram(s, tt.chatID).Send(context.Background(), "down"); err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			if s.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", s.calls, tt.wantCalls)
			}
			if tt.wantCalls == 1 && (s.chatID != "-100" || s.text != "down") {
				t.Errorf("sent %q to %q", s.text, s.chatID)
			}
		})
	}
}

func TestEmail_Send(t *testing.T) {
	tpl := email.NewTemplates(&config.Config{BaseURL: "https://drops.example.com"})

	tests := []struct {
		name      string
		enabled   bool
		to        []string
		wantCalls int
	}{
		{"enabled with recipients", true, []string{"ops@example.com"}, 1},
		{"disabled", false, []string{"ops@example.com"}, 0},
		{"no recipients", true, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMailer{enabled: tt.enabled}
			if err := NewEmail(m, tpl, tt.to).Send(context.Background(), "storage down"); err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			if m.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", m.calls, tt.wantCalls)
			}
			if tt.wantCalls == 1 && !strings.Contains(m.subject, "storage down") {
				t.Errorf("subject = %q", m.subject)
			}
		})
	}
}

func TestMulti_Send(t *testing.T) {
	errA := errors.New("telegram down")
	errB := errors.New("smtp down")

	a := &recordingAlerter{err: errA}
	b := &recordingAlerter{err: errB}
	c := &recordingAlerter{}

	err := NewMulti(time.Second, a, b, c).Send(context.Background(), "x")
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Send() error = %v, want both channel errors", err)
	}
	if !c.deadline {
		t.Error("channel did not run under a deadline")
	}
}

func alertsCounted(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != "trenddrop_alerts_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMulti_NoChannels(t *testing.T) {
	metrics.Init(nil)
	before := alertsCounted(t)

	if err := NewMulti(time.Second).Send(context.Background(), "x"); err != nil {
		t.Errorf("Send() error = %v, want nil", err)
	}
	if got := alertsCounted(t); got != before {
		t.Errorf("alerts counted = %v, want %v: nothing was dispatched", got, before)
	}

	if err := NewMulti(time.Second, &recordingAlerter{}).Send(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}
	if got := alertsCounted(t); got != before+1 {
		t.Errorf("alerts counted = %v, want %v after one dispatch", got, before+1)
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{"nothing configured", &config.Config{}, 0},
		{"telegram without chat", &config.Config{TelegramBotToken: "t"}, 0},
		{"telegram", &config.Config{TelegramBotToken: "t", TelegramAlertChatID: "-1"}, 1},
		{"telegram and email", &config.Config{
			TelegramBotToken: "t", TelegramAlertChatID: "-1",
			SMTPEnabled: true, SMTPHost: "smtp.example.com", SMTPFrom: "a@example.com",
			AlertEmailTo: []string{"ops@example.com"},
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FromConfig(tt.cfg, nil)
			if len(m.channels) != tt.want {
				t.Errorf("channels = %d, want %d", len(m.channels), tt.want)
			}
		})
	}
}
