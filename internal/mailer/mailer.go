package mailer

import (
	"log"

	"github.com/kennndev/mindflow/internal/config"
)

// Mailer delivers verification codes to users. Real transports are injected
// at startup; the default console transport just logs, which is enough for
// development and tests.
type Mailer interface {
	SendVerificationCode(to, code string) error
}

// New returns the mailer matching the configured transport.
func New(cfg config.MailerConfig) Mailer {
	switch cfg.Transport {
	default:
		return &ConsoleMailer{From: cfg.DefaultFrom}
	}
}

// ConsoleMailer writes outgoing codes to the process log.
type ConsoleMailer struct {
	From string
}

func (m *ConsoleMailer) SendVerificationCode(to, code string) error {
	log.Printf("mailer: verification code for %s (from %s): %s", to, m.From, code)
	return nil
}
