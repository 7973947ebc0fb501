package email

import "sync"

// MockProvider records sent messages instead of delivering them. Safe for
// concurrent use; the contact flow sends from a goroutine.
type MockProvider struct {
	mu   sync.Mutex
	sent []Message
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *msg)
	return nil
}

// Sent returns a copy of everything recorded so far.
func (m *MockProvider) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
