package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through a gomail dialer.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

// NewSMTPProvider validates the config and builds the dialer.
func NewSMTPProvider(config Config) (*SMTPProvider, error) {
	if config.SMTPHost == "" || config.SMTPPort == 0 {
		return nil, fmt.Errorf("smtp host and port are required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

// Send delivers one message. Dial-per-send keeps the provider stateless; the
// volume here (contact notifications) does not justify connection reuse.
func (p *SMTPProvider) Send(msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	return p.dialer.DialAndSend(m)
}
