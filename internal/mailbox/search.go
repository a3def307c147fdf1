package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/yamashin01/invoiceflow/internal/model"
)

// BuildQuery assembles the Gmail search query for one sender within the
// window. has:attachment keeps attachment-less threads out of the result
// up front.
func BuildQuery(sender model.SenderFilter, window model.DateRange) string {
	parts := []string{"from:" + sender.Email}
	if sender.Keyword != "" {
		parts = append(parts, "subject:"+sender.Keyword)
	}
	parts = append(parts,
		"after:"+window.QueryAfter(),
		"before:"+window.QueryBefore(),
		"has:attachment",
	)
	return strings.Join(parts, " ")
}

// Search finds candidate messages for the sender within the window,
// following result pages until the listing is exhausted. Candidates carry
// headers only; attachment bytes are fetched per message via Attachments,
// after the duplicate check has decided the message is worth the download.
func (c *Client) Search(ctx context.Context, sender model.SenderFilter, window model.DateRange) ([]model.CandidateMessage, error) {
	query := BuildQuery(sender, window)
	slog.Info("Searching mailbox", "query", query)

	var messages []model.CandidateMessage
	pageToken := ""
	for {
		call := c.service.Users.Messages.List(gmailUser).Q(query).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("gmail search failed for %s: %w", sender.Email, err)
		}

		for _, ref := range list.Messages {
			meta, err := c.service.Users.Messages.Get(gmailUser, ref.Id).
				Format("metadata").
				MetadataHeaders("Subject", "From").
				Context(ctx).
				Do()
			if err != nil {
				return nil, fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
			}
			messages = append(messages, toCandidate(meta))
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			break
		}
	}

	slog.Info("Mailbox search finished", "sender", sender.Email, "messages", len(messages))
	return messages, nil
}

// Attachments downloads every named attachment of one message, preserving
// part order. Called once per message that survives the duplicate check.
func (c *Client) Attachments(ctx context.Context, messageID string) ([]model.Attachment, error) {
	full, err := c.service.Users.Messages.Get(gmailUser, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	return c.collectAttachments(ctx, messageID, full.Payload)
}

func toCandidate(msg *gmail.Message) model.CandidateMessage {
	candidate := model.CandidateMessage{
		ID:       msg.Id,
		Received: time.UnixMilli(msg.InternalDate),
	}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			switch header.Name {
			case "Subject":
				candidate.Subject = header.Value
			case "From":
				candidate.From = header.Value
			}
		}
	}

	return candidate
}

// collectAttachments walks the MIME tree and downloads every named
// attachment body.
func (c *Client) collectAttachments(ctx context.Context, messageID string, part *gmail.MessagePart) ([]model.Attachment, error) {
	if part == nil {
		return nil, nil
	}

	var attachments []model.Attachment
	if part.Filename != "" && part.Body != nil {
		data, err := c.attachmentData(ctx, messageID, part.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch attachment %s: %w", part.Filename, err)
		}
		attachments = append(attachments, model.Attachment{
			Filename:    part.Filename,
			ContentType: part.MimeType,
			Data:        data,
		})
	}

	for _, child := range part.Parts {
		nested, err := c.collectAttachments(ctx, messageID, child)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, nested...)
	}

	return attachments, nil
}

func (c *Client) attachmentData(ctx context.Context, messageID string, body *gmail.MessagePartBody) ([]byte, error) {
	encoded := body.Data
	if encoded == "" && body.AttachmentId != "" {
		fetched, err := c.service.Users.Messages.Attachments.Get(gmailUser, messageID, body.AttachmentId).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		encoded = fetched.Data
	}
	return base64.URLEncoding.DecodeString(encoded)
}
