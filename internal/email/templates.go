package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"trenddrop/internal/config"
)

// Templates renders alert emails.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// Alert renders an operator alert. The subject is the first line of text.
func (t *Templates) Alert(text string, at time.Time) (subject, htmlBody, textBody string) {
	subject, _, _ = strings.Cut(text, "\n")
	subject = "[TrendDrop] " + strings.TrimSpace(subject)

	stamp := at.UTC().Format(time.RFC3339)
	textBody = fmt.Sprintf("%s\n\nRaised at %s by %s\n", text, stamp, t.cfg.BaseURL)

	content := fmt.Sprintf(`<p class="error">%s</p>
        <p class="meta">Raised at <code>%s</code></p>`,
		strings.ReplaceAll(html.EscapeString(text), "\n", "<br>"), stamp)
	htmlBody = t.baseHTML("Health alert", content)

	return subject, htmlBody, textBody
}

func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #111827; color: white; padding: 16px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { padding: 12px; font-size: 12px; color: #6b7280; }
        .error { color: #dc2626; font-weight: 600; }
        .meta { color: #6b7280; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">
        %s
    </div>
    <div class="footer"><a href="%s">%s</a></div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content,
		html.EscapeString(t.cfg.BaseURL), html.EscapeString(t.cfg.BaseURL))
}
