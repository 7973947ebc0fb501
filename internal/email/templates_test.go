package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContactExchange(t *testing.T) {
	msg := BuildContactExchange("owner@example.com", ContactExchangeData{
		OwnerName:    "Asha",
		VisitorName:  "Ravi",
		VisitorEmail: "ravi@example.com",
		Message:      "Great meeting you",
		Event:        "TechSparks",
	})

	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Equal(t, "New contact from Ravi", msg.Subject)
	assert.Contains(t, msg.Body, "Ravi")
	assert.Contains(t, msg.Body, "ravi@example.com")
	assert.Contains(t, msg.Body, "TechSparks")
	assert.Contains(t, msg.Body, "Great meeting you")

	// Optional sections stay out when unset.
	assert.NotContains(t, msg.Body, "Place:")
	assert.NotContains(t, msg.Body, "Date:")
}

func TestMockProviderRecords(t *testing.T) {
	mock := NewMockProvider()

	require.NoError(t, mock.Send(&Message{To: []string{"a@example.com"}, Subject: "one"}))
	require.NoError(t, mock.Send(&Message{To: []string{"b@example.com"}, Subject: "two"}))

	sent := mock.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", sent[0].Subject)
	assert.Equal(t, "two", sent[1].Subject)
}

func TestSMTPProviderConfigValidation(t *testing.T) {
	_, err := NewSMTPProvider(Config{})
	assert.Error(t, err)

	_, err = NewSMTPProvider(Config{SMTPHost: "smtp.example.com", SMTPPort: 587})
	assert.Error(t, err)

	p, err := NewSMTPProvider(Config{
		SMTPHost:  "smtp.example.com",
		SMTPPort:  587,
		FromEmail: "noreply@example.com",
	})
	require.NoError(t, err)
	assert.Error(t, p.Send(&Message{Subject: "no recipients"}))
}
