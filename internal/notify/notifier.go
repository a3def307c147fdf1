package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Notifier delivers summary emails through the Gmail API on behalf of the
// authenticated user.
type Notifier struct {
	service   *gmail.Service
	recipient string
}

// NewNotifier returns a Notifier, or nil when no recipient is configured.
// A nil Notifier is valid and drops every send with a log line.
func NewNotifier(ctx context.Context, httpClient *http.Client, recipient string) (*Notifier, error) {
	if recipient == "" {
		return nil, nil
	}
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Notifier{service: svc, recipient: recipient}, nil
}

// Send delivers the message to the configured recipient.
func (n *Notifier) Send(ctx context.Context, subject, body string) error {
	if n == nil {
		slog.Info("Notification email not configured, skipping notification")
		return nil
	}

	raw := buildRawMessage(n.recipient, Message{Subject: subject, Body: body})
	_, err := n.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send notification to %s: %w", n.recipient, err)
	}
	slog.Info("Sent notification email", "recipient", n.recipient)
	return nil
}

// buildRawMessage frames an RFC 2822 message with a UTF-8 subject and
// body, base64url-encoded the way the Gmail API expects.
func buildRawMessage(to string, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
