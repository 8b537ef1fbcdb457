package mail

import "gopkg.in/gomail.v2"

// WithDialer swaps the SMTP dialer in tests.
func (s *EmailSender) WithDialer(d interface {
	DialAndSend(m ...*gomail.Message) error
}) *EmailSender {
	s.dialer = d
	return s
}
