package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para envio de correos de verificacion y reset.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail string, code int) error
	SendPasswordReset(ctx context.Context, toEmail string, code int) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendVerificationCode(_ context.Context, _ string, _ int) error {
	return s.err()
}

func (s *disabledSender) SendPasswordReset(_ context.Context, _ string, _ int) error {
	return s.err()
}

func (s *disabledSender) err() error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
