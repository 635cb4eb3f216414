package testutil

import (
	"context"
	"sync"
)

// Mail is one message captured by Sender.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Sender records messages instead of delivering them.
type Sender struct {
	mu   sync.Mutex
	sent []Mail

	// Err, when set, fails every Send.
	Err error
}

func (s *Sender) Send(_ context.Context, to, subject, htmlBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, Mail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns a copy of the captured messages.
func (s *Sender) Sent() []Mail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Mail(nil), s.sent...)
}
