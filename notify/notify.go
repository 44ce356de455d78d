// Package notify implements the optional fatal-path email notifier
// (SPEC_FULL.md §B, §C): a one-shot alert sent when the supervisor dies
// fatally (not on the voluntary config disable), composed with go-mail/mail/v2 the way the teacher's
// middlewares/mail.go builds its messages, and rate-limited with
// golang.org/x/time/rate so a host that keeps relaunching a
// chronically-failing supervisor doesn't turn into an email storm.
package notify

import (
	"fmt"
	"time"

	"github.com/go-mail/mail/v2"
	"golang.org/x/time/rate"
)

// Settings configures the notifier. Off by default (SPEC_FULL.md §C).
type Settings struct {
	Enabled  bool
	From     string
	To       []string
	SMTPHost string
	SMTPPort int
	Username string
	Password string

	// Cooldown bounds how often an alert may actually be sent; defaults to
	// one hour if zero.
	Cooldown time.Duration
}

// Notifier sends the one-shot fatal-exit alert.
type Notifier struct {
	settings Settings
	limiter  *rate.Limiter
	dial     func(d *mail.Dialer, m *mail.Message) error
}

// New builds a Notifier from settings.
func New(settings Settings) *Notifier {
	cooldown := settings.Cooldown
	if cooldown <= 0 {
		cooldown = time.Hour
	}

	return &Notifier{
		settings: settings,
		limiter:  rate.NewLimiter(rate.Every(cooldown), 1),
		dial:     func(d *mail.Dialer, m *mail.Message) error { return d.DialAndSend(m) },
	}
}

// NotifyFatal sends the alert for a fatal exit, subject to the enabled flag
// and rate limiter. A suppressed or disabled notification is not an error.
func (n *Notifier) NotifyFatal(program, reason string) error {
	if !n.settings.Enabled {
		return nil
	}
	if !n.limiter.Allow() {
		return nil
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.settings.From)
	m.SetHeader("To", n.settings.To...)
	m.SetHeader("Subject", fmt.Sprintf("[%s] fatal exit", program))
	m.SetBody("text/plain", reason)

	d := mail.NewDialer(n.settings.SMTPHost, n.settings.SMTPPort, n.settings.Username, n.settings.Password)
	return n.dial(d, m)
}
