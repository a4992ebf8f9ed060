package email

import (
	"fmt"
	"html"

	"airvoice/internal/config"
	"airvoice/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #b91c1c; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .error { color: #dc2626; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// UrgentFeedback generates the supervisor alert for urgent negative feedback.
func (t *Templates) UrgentFeedback(feedback *models.Feedback) (subject, htmlBody, textBody string) {
	flight := "unknown flight"
	if feedback.FlightNumber != nil && *feedback.FlightNumber != "" {
		flight = *feedback.FlightNumber
	}
	subject = fmt.Sprintf("[%s] Urgent negative feedback on %s", t.cfg.SiteTitle, flight)

	confidence := ""
	if feedback.SentimentConfidence != nil {
		confidence = fmt.Sprintf("%.0f%%", *feedback.SentimentConfidence)
	}

	content := fmt.Sprintf(`
        <p>An urgent <span class="error">negative</span> feedback has been received and needs immediate attention.</p>

        <div class="info-box">
            <p><span class="label">Flight:</span> %s</p>
            <p><span class="label">Type:</span> %s</p>
            <p><span class="label">Confidence:</span> %s</p>
            <p><span class="label">Text:</span> %s</p>
        </div>

        <p style="text-align: center;">
            <a href="%s/" class="button">Open Dashboard</a>
        </p>
    `,
		html.EscapeString(flight),
		html.EscapeString(feedback.Type),
		confidence,
		html.EscapeString(feedback.Text),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML("Urgent Feedback", content)
	textBody = fmt.Sprintf("Urgent negative feedback received.\n\nFlight: %s\nType: %s\nConfidence: %s\n\n%s\n\nReview it at %s/",
		flight, feedback.Type, confidence, feedback.Text, t.cfg.BaseURL)
	return subject, htmlBody, textBody
}
