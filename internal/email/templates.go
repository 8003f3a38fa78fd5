package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	subjectWelcome  = "Welcome to Later"
	subjectReminder = "Reminder: %s"
)

type baseEmailData struct {
	Title   string
	Heading string
	Body    string
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: -apple-system, Helvetica, Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px;">
	<div style="max-width: 520px; margin: 0 auto;">
		<h2 style="margin-bottom: 16px;">{{.Heading}}</h2>
		<p style="line-height: 1.6;">{{.Body}}</p>
		<p style="color: #7b8794; font-size: 12px; margin-top: 32px;">Later &middot; your things, for later</p>
	</div>
</body>
</html>`))

func renderEmail(data baseEmailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return buf.String(), nil
}
