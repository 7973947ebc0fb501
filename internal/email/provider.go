package email

// Message is one outbound email.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider sends email. The gomail-backed SMTP implementation is the real
// one; tests swap in a mock.
type Provider interface {
	Send(msg *Message) error
}

// Config holds SMTP settings.
type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
