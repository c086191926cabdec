package auth

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes sign-in codes to the log instead of delivering them.
// Used in local and dev environments.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendCode logs the code for email.
func (s *LogSender) SendCode(_ context.Context, email, code string) error {
	s.logger.Info("Sign-in code issued", zap.String("email", email), zap.String("code", code))
	return nil
}
