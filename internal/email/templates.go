package email

import (
	"fmt"
	"strings"
)

// ContactExchangeData fills the notification sent to a card owner after a
// visitor exchanges contact details.
type ContactExchangeData struct {
	OwnerName    string
	VisitorName  string
	VisitorEmail string
	Message      string
	Place        string
	Date         string
	Event        string
}

// BuildContactExchange renders the contact-exchange notification.
func BuildContactExchange(to string, data ContactExchangeData) *Message {
	var b strings.Builder
	b.WriteString("New contact from your profile:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", data.VisitorName)
	fmt.Fprintf(&b, "Email: %s\n", data.VisitorEmail)
	if data.Event != "" {
		fmt.Fprintf(&b, "Event: %s\n", data.Event)
	}
	if data.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", data.Date)
	}
	if data.Place != "" {
		fmt.Fprintf(&b, "Place: %s\n", data.Place)
	}
	if data.Message != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", data.Message)
	}

	return &Message{
		To:      []string{to},
		Subject: fmt.Sprintf("New contact from %s", data.VisitorName),
		Body:    b.String(),
	}
}
