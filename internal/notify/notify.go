package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/padraicb/go-timesheet-sync/internal/config"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// Notifier delivers failure notifications to the administrator.
// Delivery is fire-and-forget: a failed send is logged, never escalated.
type Notifier interface {
	Notify(subject, body string)
}

// New returns an SMTP mailer when an admin address and SMTP host are
// configured, otherwise a log-only notifier.
func New(cfg *config.Config) Notifier {
	if cfg.AdminEmail == "" || cfg.SMTPHost == "" {
		util.LogDebug("Admin email or SMTP host not configured, notifications go to the log only")
		return &LogNotifier{}
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.AdminEmail
	}
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from: from,
		to:   cfg.AdminEmail,
	}
}

// Mailer sends plain-text notification mail over SMTP.
type Mailer struct {
	addr string
	from string
	to   string
}

func (m *Mailer) Notify(subject, body string) {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + m.to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, []string{m.to}, []byte(msg)); err != nil {
		util.LogErrorf("Failed to send notification %q to %s: %v", subject, m.to, err)
		return
	}
	util.LogInfof("Notification sent to %s: %s", m.to, subject)
}

// LogNotifier records notifications in the log when no mailer is
// configured.
type LogNotifier struct{}

func (n *LogNotifier) Notify(subject, body string) {
	util.LogWarnf("Notification: %s: %s", subject, body)
}
