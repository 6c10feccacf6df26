package mailer

import (
	"context"
	"strings"

	"github.com/Ananth-NQI/bteam-backend/internal/logger"
)

// LogMailer simulates delivery by logging the message; used when no
// email provider is configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	logger.InfoContext(ctx, "📧 [EMAIL SIMULATION]",
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
