package services

import (
	"fmt"
	"sync"
)

// SentMail records a single delivery made through the mock
type SentMail struct {
	To       string
	Username string
}

// MockMailService is a mock implementation of MailService for testing
type MockMailService struct {
	sent     []SentMail
	failSend bool
	mu       sync.RWMutex
}

// NewMockMailService creates a new mock mail service
func NewMockMailService() *MockMailService {
	return &MockMailService{}
}

// SetAsMockForTesting sets this mock as the global mail service instance for testing
func (m *MockMailService) SetAsMockForTesting() {
	SetMailService(m)
}

// FailNextSends makes every subsequent send return an error
func (m *MockMailService) FailNextSends(fail bool) {
	m.mu.Lock()
	m.failSend = fail
	m.mu.Unlock()
}

// SendWelcomeEmail records the delivery instead of sending it
func (m *MockMailService) SendWelcomeEmail(to, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSend {
		return fmt.Errorf("mock mail failure for %s", to)
	}

	m.sent = append(m.sent, SentMail{To: to, Username: username})
	return nil
}

// SentMails returns all recorded deliveries (for testing assertions)
func (m *MockMailService) SentMails() []SentMail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mails := make([]SentMail, len(m.sent))
	copy(mails, m.sent)
	return mails
}

// Clear removes all recorded deliveries
func (m *MockMailService) Clear() {
	m.mu.Lock()
	m.sent = nil
	m.mu.Unlock()
}
