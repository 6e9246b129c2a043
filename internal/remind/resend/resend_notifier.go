package resend

import (
	"bytes"
	"html/template"

	"github.com/resend/resend-go/v2"
)

type Notifier struct {
	APIKey string
	From   string
	To     string
}

const htmlTemplate = `
<p>The following habit streaks will reset in about {{.Hours}} hours unless you log them:</p>
<ul>
{{range .Habits}}
  <li>{{.}}</li>
{{end}}
</ul>
`

func (n *Notifier) SendReminder(habitTitles []string, hoursLeft int) error {
	tmpl, err := template.New("email").Parse(htmlTemplate)
	if err != nil {
		return err
	}

	data := struct {
		Habits []string
		Hours  int
	}{
		Habits: habitTitles,
		Hours:  hoursLeft,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	client := resend.NewClient(n.APIKey)
	params := &resend.SendEmailRequest{
		From:    n.From,
		To:      []string{n.To},
		Subject: "Streaks are expiring soon",
		Html:    buf.String(),
	}

	_, err = client.Emails.Send(params)
	return err
}
