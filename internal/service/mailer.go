package service

import (
	"fmt"
	"net/smtp"
)

// Mailer delivers password-reset tokens over a plain SMTP relay. When
// no host is configured the mailer is disabled and callers fall back to
// logging the token, which keeps local development working without a
// relay.
type Mailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Enabled reports whether a relay host is configured.
func (m Mailer) Enabled() bool { return m.Host != "" }

// SendResetToken mails the reset token to the account's address. The
// token is the whole capability; the mail deliberately contains nothing
// else that could be replayed.
func (m Mailer) SendResetToken(to, token string) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Sport+ password reset\r\n\r\n"+
			"We received a request to reset your password.\r\n\r\n"+
			"Your reset token (valid for one hour):\r\n\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this message.\r\n",
		m.From, to, token)

	addr := m.Host + ":" + m.Port
	var a smtp.Auth
	if m.User != "" {
		a = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	return smtp.SendMail(addr, a, m.From, []string{to}, []byte(body))
}
